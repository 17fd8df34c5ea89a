// Package extract runs the keyword extraction pipeline over catalog
// records: tokenize, normalize, filter candidates, embed the keyword
// and document branches, and rank candidates by cosine similarity to
// the document. Batches fan out over a worker pool; each record is
// independent, and a failed record is logged and skipped without
// aborting the batch.
package extract

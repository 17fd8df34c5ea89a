// Package recommend scores catalog items against a user query and
// assembles the final recommendation rows. Scoring expands the query
// with word-vector nearest neighbors, weights direct term matches
// over expanded ones, and keeps the top results; assembly joins the
// surviving ISBNs with catalog metadata and library availability.
package recommend

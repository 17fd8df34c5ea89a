// Package encoder defines the embedding engine used by the extraction
// pipeline: a pretrained contextual encoder that turns keyword
// candidates and whole catalog records into fixed-width vectors.
//
// Two implementations are provided. Package onnx runs a local encoder
// through ONNX Runtime with WordPiece tokenization, performing the
// boundary-token exclusion and masked mean pooling in-process. Package
// openai delegates to an OpenAI-compatible embedding endpoint for
// deployments without a local model. Package mock supplies a
// deterministic engine for tests.
package encoder

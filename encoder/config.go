// Copyright 2026 The bookrec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package encoder

import "errors"

// Tokenization defaults shared by the engine implementations.
const (
	// DefaultMaxSeqLen is the maximum token sequence length per chunk.
	DefaultMaxSeqLen = 128
	// DefaultStride is the token overlap between consecutive chunks of
	// a long document.
	DefaultStride = 20
)

// Config holds configuration for the encoder engines.
type Config struct {
	// ModelPath is the path to the ONNX encoder model file.
	ModelPath string

	// TokenizerPath is the path to the tokenizer.json of the model.
	TokenizerPath string

	// OrtLibraryPath is the path to the ONNX Runtime shared library.
	// Empty means the platform default lookup.
	OrtLibraryPath string

	// MaxSeqLen is the maximum token sequence length. Default 128.
	MaxSeqLen int

	// Stride is the token overlap between chunks. Default 20.
	Stride int

	// EmbeddingHost is the base URL of an OpenAI-compatible embedding
	// service, used by the remote engine instead of ModelPath.
	// Example: "http://localhost:11434/v1"
	EmbeddingHost string

	// EmbeddingModel is the remote embedding model identifier.
	EmbeddingModel string
}

// DefaultConfig returns a config with tokenization defaults applied.
func DefaultConfig() *Config {
	return &Config{
		MaxSeqLen: DefaultMaxSeqLen,
		Stride:    DefaultStride,
	}
}

// ValidateLocal checks the fields required by the local ONNX engine.
func (c *Config) ValidateLocal() error {
	if c.ModelPath == "" {
		return errors.New("model path required")
	}
	if c.TokenizerPath == "" {
		return errors.New("tokenizer path required")
	}
	if c.MaxSeqLen <= 2 {
		return errors.New("max sequence length must exceed the two boundary tokens")
	}
	if c.Stride < 0 || c.Stride >= c.MaxSeqLen {
		return errors.New("stride must be non-negative and smaller than max sequence length")
	}
	return nil
}

// ValidateRemote checks the fields required by the remote engine.
func (c *Config) ValidateRemote() error {
	if c.EmbeddingHost == "" {
		return errors.New("embedding host required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("embedding model required")
	}
	return nil
}

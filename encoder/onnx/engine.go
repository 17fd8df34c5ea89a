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


package onnx

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/yunseol/bookrec/core"
	"github.com/yunseol/bookrec/encoder"
)

// Tensor names of the exported encoder graph.
const (
	inputIDsName      = "input_ids"
	attentionMaskName = "attention_mask"
	tokenTypeIDsName  = "token_type_ids"
	lastHiddenName    = "last_hidden_state"
)

// The ONNX Runtime environment is process-global.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(libraryPath string) error {
	ortInitOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// Engine runs a pretrained contextual encoder locally through ONNX
// Runtime. Tokenization truncates to the configured maximum length
// with overlap striding, and pooling excludes the boundary markers
// before taking the masked mean.
//
// Session access is serialized with a mutex; the engine is safe for
// concurrent use.
type Engine struct {
	session *ort.DynamicAdvancedSession
	tk      *tokenizer.Tokenizer
	modelID string

	mu       sync.Mutex
	cacheMu  sync.RWMutex
	memCache map[string][]float32

	logger *slog.Logger
}

var _ encoder.Engine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine loads the tokenizer and the ONNX model. A load failure is
// fatal for startup; callers must not serve requests on error.
func NewEngine(cfg *encoder.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = encoder.DefaultConfig()
	}
	if cfg.MaxSeqLen == 0 {
		cfg.MaxSeqLen = encoder.DefaultMaxSeqLen
	}
	if err := cfg.ValidateLocal(); err != nil {
		return nil, err
	}

	if err := initRuntime(cfg.OrtLibraryPath); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", cfg.TokenizerPath, err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{
		MaxLength: cfg.MaxSeqLen,
		Strategy:  tokenizer.LongestFirst,
		Stride:    cfg.Stride,
	})

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{inputIDsName, attentionMaskName, tokenTypeIDsName},
		[]string{lastHiddenName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("load encoder model %s: %w", cfg.ModelPath, err)
	}

	e := &Engine{
		session:  session,
		tk:       tk,
		modelID:  filepath.Base(cfg.ModelPath),
		memCache: make(map[string][]float32),
		logger:   slog.Default().With("component", "onnx-encoder"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// Close releases the ONNX session. The shared runtime environment
// stays alive for other engines in the process.
func (e *Engine) Close() error {
	e.cacheMu.Lock()
	e.memCache = nil
	e.cacheMu.Unlock()
	if e.session != nil {
		err := e.session.Destroy()
		e.session = nil
		return err
	}
	return nil
}

// EmbedKeywords returns one pooled vector per keyword, in input order.
// Keyword vectors are cached by content hash since the same candidate
// recurs across records.
func (e *Engine) EmbedKeywords(ctx context.Context, words []string) ([][]float32, error) {
	words = encoder.KeywordInputs(words)
	vectors := make([][]float32, len(words))

	for i, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := core.ContentKey(e.modelID, word)
		if vec := e.fromCache(key); vec != nil {
			vectors[i] = vec
			continue
		}
		chunkVecs, err := e.embed(word)
		if err != nil {
			return nil, fmt.Errorf("embed keyword %q: %w", word, err)
		}
		vec := encoder.MeanVectors(chunkVecs)
		e.toCache(key, vec)
		vectors[i] = vec
	}
	return vectors, nil
}

// EmbedDocument embeds the full record text. Overlapping chunks of a
// long document each yield a vector.
func (e *Engine) EmbedDocument(ctx context.Context, text string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.embed(encoder.DocumentInput(text))
}

type chunkEnc struct {
	ids     []int64
	mask    []int64
	typeIDs []int64
}

func (e *Engine) embed(text string) ([][]float32, error) {
	chunks, err := e.chunk(text)
	if err != nil {
		return nil, err
	}
	return e.run(chunks)
}

// chunk tokenizes text into the main encoding plus any overflowing
// chunks produced by stride splitting.
func (e *Engine) chunk(text string) ([]chunkEnc, error) {
	en, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, err
	}
	chunks := []chunkEnc{toChunk(en)}
	for i := range en.Overflowing {
		chunks = append(chunks, toChunk(&en.Overflowing[i]))
	}
	return chunks, nil
}

func toChunk(en *tokenizer.Encoding) chunkEnc {
	c := chunkEnc{
		ids:     make([]int64, len(en.Ids)),
		mask:    make([]int64, len(en.AttentionMask)),
		typeIDs: make([]int64, len(en.TypeIds)),
	}
	for i, id := range en.Ids {
		c.ids[i] = int64(id)
	}
	for i, m := range en.AttentionMask {
		c.mask[i] = int64(m)
	}
	for i, ti := range en.TypeIds {
		c.typeIDs[i] = int64(ti)
	}
	return c
}

// run executes one forward pass over a batch of chunks and mean-pools
// each row with its boundary markers excluded.
func (e *Engine) run(chunks []chunkEnc) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no token chunks to embed")
	}

	batch := len(chunks)
	seqLen := 0
	for _, c := range chunks {
		if len(c.ids) > seqLen {
			seqLen = len(c.ids)
		}
	}

	// Pad every chunk to the longest one in the batch.
	ids := make([]int64, batch*seqLen)
	mask := make([]int64, batch*seqLen)
	typeIDs := make([]int64, batch*seqLen)
	for b, c := range chunks {
		copy(ids[b*seqLen:], c.ids)
		copy(mask[b*seqLen:], c.mask)
		copy(typeIDs[b*seqLen:], c.typeIDs)
	}

	shape := ort.NewShape(int64(batch), int64(seqLen))
	idsT, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, err
	}
	defer idsT.Destroy()
	maskT, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, err
	}
	defer maskT.Destroy()
	typeT, err := ort.NewTensor(shape, typeIDs)
	if err != nil {
		return nil, err
	}
	defer typeT.Destroy()

	outputs := make([]ort.Value, 1)
	e.mu.Lock()
	err = e.session.Run([]ort.Value{idsT, maskT, typeT}, outputs)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("encoder forward pass: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer hidden.Destroy()

	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", outShape)
	}
	outSeq := int(outShape[1])
	dim := int(outShape[2])
	data := hidden.GetData()

	pooled := make([][]float32, batch)
	for b := range chunks {
		tokens := make([][]float32, outSeq)
		for s := 0; s < outSeq; s++ {
			start := (b*outSeq + s) * dim
			tokens[s] = data[start : start+dim]
		}
		rowMask := mask[b*seqLen : (b+1)*seqLen]
		pooled[b] = encoder.MeanPool(tokens, encoder.ExcludeBoundaries(rowMask))
	}
	return pooled, nil
}

func (e *Engine) fromCache(key string) []float32 {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return e.memCache[key]
}

func (e *Engine) toCache(key string, vec []float32) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if e.memCache != nil {
		e.memCache[key] = vec
	}
}

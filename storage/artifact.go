package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-crypt/x/blake2b"
	"github.com/mus-format/mus-go/varint"

	"github.com/yunseol/bookrec/core"
)

// The artifact file carries the precomputed keyword index (isbn →
// ranked keywords) from the offline extraction run to the serving
// process: a magic header, a result count, the MUS-encoded results,
// and a BLAKE2b checksum over everything before it.

var artifactMagic = []byte("BKWA1")

const artifactChecksumLen = 16

// WriteArtifact serializes keyword results into the artifact format.
func WriteArtifact(w io.Writer, results []*core.KeywordResult) error {
	size := len(artifactMagic) + varint.PositiveInt.Size(len(results))
	for _, result := range results {
		size += core.KeywordResultMUS.Size(*result)
	}

	payload := make([]byte, size)
	n := copy(payload, artifactMagic)
	n += varint.PositiveInt.Marshal(len(results), payload[n:])
	for _, result := range results {
		n += core.KeywordResultMUS.Marshal(*result, payload[n:])
	}

	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err := w.Write(checksum(payload))
	return err
}

// ReadArtifact parses an artifact and returns its keyword results.
// Returns ErrArtifactCorrupt on checksum or structural failure.
func ReadArtifact(r io.Reader) ([]*core.KeywordResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < len(artifactMagic)+artifactChecksumLen {
		return nil, fmt.Errorf("%w: truncated file", ErrArtifactCorrupt)
	}
	payload := data[:len(data)-artifactChecksumLen]
	sum := data[len(data)-artifactChecksumLen:]
	if !bytes.Equal(sum, checksum(payload)) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrArtifactCorrupt)
	}
	if !bytes.HasPrefix(payload, artifactMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrArtifactCorrupt)
	}

	offset := len(artifactMagic)
	count, n, err := varint.PositiveInt.Unmarshal(payload[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	offset += n

	results := make([]*core.KeywordResult, 0, count)
	for i := 0; i < count; i++ {
		result, n, err := core.KeywordResultMUS.Unmarshal(payload[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: result %d: %v", ErrArtifactCorrupt, i, err)
		}
		offset += n
		results = append(results, &result)
	}
	if offset != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrArtifactCorrupt, len(payload)-offset)
	}
	return results, nil
}

func checksum(payload []byte) []byte {
	h, _ := blake2b.New(artifactChecksumLen, nil)
	h.Write(payload)
	return h.Sum(nil)
}

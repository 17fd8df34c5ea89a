package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
)

// Hand-written MUS serializers for the persisted domain types.

var (
	// StringsMUS serializes a string slice.
	StringsMUS = ord.NewSliceSer[string](ord.String)

	// KeywordResultMUS serializes a KeywordResult.
	KeywordResultMUS = keywordResultMUS{}
)

var _ mus.Serializer[KeywordResult] = keywordResultMUS{}

type keywordResultMUS struct{}

func (keywordResultMUS) Marshal(kr KeywordResult, bs []byte) (n int) {
	n = ord.String.Marshal(kr.ISBN, bs)
	n += StringsMUS.Marshal(kr.Keywords, bs[n:])
	return n
}

func (keywordResultMUS) Unmarshal(bs []byte) (kr KeywordResult, n int, err error) {
	kr.ISBN, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return kr, n, err
	}
	var n1 int
	kr.Keywords, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	return kr, n, err
}

func (keywordResultMUS) Size(kr KeywordResult) (size int) {
	return ord.String.Size(kr.ISBN) + StringsMUS.Size(kr.Keywords)
}

func (keywordResultMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	var n1 int
	n1, err = StringsMUS.Skip(bs[n:])
	return n + n1, err
}

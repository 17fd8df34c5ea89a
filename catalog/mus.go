package catalog

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
)

// Hand-written MUS serializers for the catalog rows.

var (
	// BookMUS serializes a Book.
	BookMUS = bookMUS{}

	// AvailabilityMUS serializes an Availability row.
	AvailabilityMUS = availabilityMUS{}
)

var (
	_ mus.Serializer[Book]         = bookMUS{}
	_ mus.Serializer[Availability] = availabilityMUS{}
)

type bookMUS struct{}

func (bookMUS) Marshal(b Book, bs []byte) (n int) {
	n = ord.String.Marshal(b.ISBN, bs)
	n += ord.String.Marshal(b.Title, bs[n:])
	n += ord.String.Marshal(b.Authors, bs[n:])
	n += ord.String.Marshal(b.Publisher, bs[n:])
	n += ord.String.Marshal(b.Classification, bs[n:])
	n += ord.String.Marshal(b.RegisteredAt, bs[n:])
	n += ord.String.Marshal(b.CoverURL, bs[n:])
	return n
}

func (bookMUS) Unmarshal(bs []byte) (b Book, n int, err error) {
	fields := []*string{
		&b.ISBN, &b.Title, &b.Authors, &b.Publisher,
		&b.Classification, &b.RegisteredAt, &b.CoverURL,
	}
	var n1 int
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return b, n, err
		}
	}
	return b, n, nil
}

func (bookMUS) Size(b Book) (size int) {
	for _, s := range []string{
		b.ISBN, b.Title, b.Authors, b.Publisher,
		b.Classification, b.RegisteredAt, b.CoverURL,
	} {
		size += ord.String.Size(s)
	}
	return size
}

func (bookMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 7; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type availabilityMUS struct{}

func (availabilityMUS) Marshal(a Availability, bs []byte) (n int) {
	n = ord.String.Marshal(a.ISBN, bs)
	n += ord.String.Marshal(a.Library, bs[n:])
	return n
}

func (availabilityMUS) Unmarshal(bs []byte) (a Availability, n int, err error) {
	a.ISBN, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return a, n, err
	}
	var n1 int
	a.Library, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return a, n, err
}

func (availabilityMUS) Size(a Availability) (size int) {
	return ord.String.Size(a.ISBN) + ord.String.Size(a.Library)
}

func (availabilityMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	return n + n1, err
}

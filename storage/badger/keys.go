package badger

import "fmt"

// Key prefixes for different data types
const (
	keywordResultPrefix = "kwres"
	bookPrefix          = "book"
	availabilityPrefix  = "avail"
)

// makeKeywordResultKey generates a key for a keyword result by ISBN.
func makeKeywordResultKey(isbn string) []byte {
	return []byte(fmt.Sprintf("%s:%s", keywordResultPrefix, isbn))
}

// makeBookKey generates a key for a catalog book by ISBN.
func makeBookKey(isbn string) []byte {
	return []byte(fmt.Sprintf("%s:%s", bookPrefix, isbn))
}

// makeAvailabilityKey generates a composite key for one availability
// row. Format: prefix:library:isbn, so that one library's holdings are
// a contiguous key range.
func makeAvailabilityKey(library, isbn string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", availabilityPrefix, library, isbn))
}

// makeLibraryScanPrefix generates the scan prefix for one library's
// availability rows, or for all rows when library is empty.
func makeLibraryScanPrefix(library string) []byte {
	if library == "" {
		return []byte(availabilityPrefix + ":")
	}
	return []byte(fmt.Sprintf("%s:%s:", availabilityPrefix, library))
}

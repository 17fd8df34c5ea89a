package core

// TokenClass is the morphological class assigned to a token by the analyzer.
type TokenClass int

const (
	// TokenClassOther covers everything the pipeline discards:
	// particles, endings, punctuation, numerals.
	TokenClassOther TokenClass = iota
	// TokenClassNounCommon is a common noun.
	TokenClassNounCommon
	// TokenClassNounProper is a proper noun, including dictionary-registered
	// domain terms.
	TokenClassNounProper
	// TokenClassForeign is a foreign-script word (Latin alphabet).
	TokenClassForeign
)

// String returns the conventional part-of-speech tag for the class.
func (c TokenClass) String() string {
	switch c {
	case TokenClassNounCommon:
		return "NNG"
	case TokenClassNounProper:
		return "NNP"
	case TokenClassForeign:
		return "SL"
	default:
		return "UNK"
	}
}

// IsKeywordClass reports whether tokens of this class are retained as
// keyword candidates. Only common nouns, proper nouns and foreign-script
// words survive tokenization.
func (c TokenClass) IsKeywordClass() bool {
	switch c {
	case TokenClassNounCommon, TokenClassNounProper, TokenClassForeign:
		return true
	default:
		return false
	}
}

// Token is a surface form with its morphological class.
type Token struct {
	Form  string
	Class TokenClass
}

package morph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yunseol/bookrec/core"
)

// Analyzer splits raw text into tokens with morphological classes.
// Implementations must be safe for concurrent use once constructed.
type Analyzer interface {
	Tokenize(text string) []core.Token
}

// Trailing particles stripped from Hangul runs, longest first so that
// compound particles win over their suffixes.
var particles = []string{
	"에서부터", "으로부터",
	"에서", "에게", "부터", "까지", "보다", "마다", "처럼", "조차", "밖에", "으로",
	"은", "는", "이", "가", "을", "를", "과", "와", "의", "도", "에", "로", "만",
}

// DictAnalyzer is the built-in Analyzer. It classifies tokens by
// script: Hangul runs become nouns (proper nouns when registered in
// the vocabulary, common nouns otherwise, with trailing particles
// stripped), Latin runs become foreign-script tokens, and everything
// else is tagged as discardable.
//
// The vocabulary is populated from the user dictionary at construction
// and must not change after the first Tokenize call.
type DictAnalyzer struct {
	vocabulary map[string]bool
}

var _ Analyzer = (*DictAnalyzer)(nil)

// NewDictAnalyzer creates an analyzer and registers every canonical
// dictionary word into its vocabulary.
func NewDictAnalyzer(dict *Dictionary) (*DictAnalyzer, error) {
	if dict == nil {
		return nil, ErrDictionaryRequired
	}
	a := &DictAnalyzer{vocabulary: make(map[string]bool, dict.Len())}
	for _, word := range dict.Canonicals() {
		a.AddUserWord(word)
	}
	return a, nil
}

// AddUserWord registers a word as a known proper noun. Must be called
// before the analyzer is shared between goroutines.
func (a *DictAnalyzer) AddUserWord(word string) {
	word = strings.TrimSpace(word)
	if word != "" {
		a.vocabulary[word] = true
	}
}

// Tokenize splits text into classed tokens. Token order follows the
// input text.
func (a *DictAnalyzer) Tokenize(text string) []core.Token {
	var tokens []core.Token
	for _, run := range splitRuns(text) {
		switch run.class {
		case runHangul:
			tokens = append(tokens, a.classifyHangul(run.text))
		case runLatin:
			tokens = append(tokens, core.Token{Form: run.text, Class: core.TokenClassForeign})
		default:
			tokens = append(tokens, core.Token{Form: run.text, Class: core.TokenClassOther})
		}
	}
	return tokens
}

func (a *DictAnalyzer) classifyHangul(form string) core.Token {
	if a.vocabulary[form] {
		return core.Token{Form: form, Class: core.TokenClassNounProper}
	}
	stem := stripParticle(form)
	if a.vocabulary[stem] {
		return core.Token{Form: stem, Class: core.TokenClassNounProper}
	}
	return core.Token{Form: stem, Class: core.TokenClassNounCommon}
}

// stripParticle removes one trailing particle when the remainder keeps
// at least two syllables.
func stripParticle(form string) string {
	for _, p := range particles {
		if strings.HasSuffix(form, p) {
			stem := strings.TrimSuffix(form, p)
			if utf8.RuneCountInString(stem) >= 2 {
				return stem
			}
		}
	}
	return form
}

type runClass int

const (
	runOther runClass = iota
	runHangul
	runLatin
)

type scriptRun struct {
	text  string
	class runClass
}

func classOf(r rune) runClass {
	switch {
	case r >= 0xAC00 && r <= 0xD7A3:
		return runHangul
	case r <= unicode.MaxASCII && unicode.IsLetter(r):
		return runLatin
	case r > unicode.MaxASCII && unicode.IsLetter(r):
		// Non-Hangul, non-ASCII letters (e.g. accented Latin) still
		// count as foreign script.
		return runLatin
	default:
		return runOther
	}
}

// splitRuns breaks text into maximal runs of a single script class.
// Whitespace and punctuation separate runs and are never emitted.
func splitRuns(text string) []scriptRun {
	var runs []scriptRun
	var current []rune
	currentClass := runOther

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, scriptRun{text: string(current), class: currentClass})
			current = current[:0]
		}
	}

	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			flush()
			continue
		}
		c := classOf(r)
		if c != currentClass {
			flush()
			currentClass = c
		}
		current = append(current, r)
	}
	flush()
	return runs
}

package parser

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"wiki-chat/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrEmptySource is returned when the article yields no sentences at all.
var ErrEmptySource = errors.New("source text contains no sentences")

var (
	disallowedRe = regexp.MustCompile(models.DisallowedCharsRegex)
	whitespaceRe = regexp.MustCompile(models.WhitespaceRegex)
)

// Normalize lowercases raw, strips everything but letters, digits, whitespace,
// periods and commas, and splits the result into sentences. Sources shorter
// than minSentences are padded by repeating the whole sequence and truncated
// to exactly minSentences; longer ones are returned in full.
func Normalize(raw string, minSentences int, seg Segmenter) ([]string, error) {
	if seg == nil {
		return nil, errors.New("segmenter is required")
	}

	text := disallowedRe.ReplaceAllString(strings.Map(spaceToASCII, strings.ToLower(raw)), "")

	var sentences []string
	for _, s := range seg.Segment(text) {
		s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 {
		return nil, ErrEmptySource
	}

	if len(sentences) < minSentences {
		log.Debug().Int("sentences", len(sentences)).Int("min", minSentences).Msg("Padding article sentences")
		sentences = pad(sentences, minSentences)
	}
	return sentences, nil
}

// RE2's \s is ASCII-only; fold the other Unicode spaces (NBSP etc.) first
func spaceToASCII(r rune) rune {
	if r > unicode.MaxASCII && unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// repeat the whole sequence, then cut to n
func pad(sentences []string, n int) []string {
	times := n/len(sentences) + 1
	padded := make([]string, 0, times*len(sentences))
	for i := 0; i < times; i++ {
		padded = append(padded, sentences...)
	}
	return padded[:n]
}

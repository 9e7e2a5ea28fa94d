package parser

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedRe = regexp.MustCompile(`^[a-z0-9 .,]+$`)

// splits after every ". " so tests don't depend on the punkt model
var periodSplitter = SegmenterFunc(func(text string) []string {
	return strings.SplitAfter(text, ". ")
})

func newPunkt(t *testing.T) *PunktSegmenter {
	t.Helper()
	seg, err := NewPunktSegmenter()
	require.NoError(t, err)
	return seg
}

func TestNormalize_PadsSingleSentence(t *testing.T) {
	sentences, err := Normalize("Autocracy is a system of government.", 3, newPunkt(t))
	require.NoError(t, err)

	require.Len(t, sentences, 3)
	for _, s := range sentences {
		assert.Equal(t, "autocracy is a system of government.", s)
	}
}

func TestNormalize_RepeatsWholeSequenceThenTruncates(t *testing.T) {
	sentences, err := Normalize("One. Two. Three.", 7, periodSplitter)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"one.", "two.", "three.",
		"one.", "two.", "three.",
		"one.",
	}, sentences)
}

func TestNormalize_ExactMultipleStillTruncated(t *testing.T) {
	sentences, err := Normalize("One. Two.", 4, periodSplitter)
	require.NoError(t, err)
	assert.Equal(t, []string{"one.", "two.", "one.", "two."}, sentences)
}

func TestNormalize_KeepsLongSourcesWhole(t *testing.T) {
	sentences, err := Normalize("A. B. C. D.", 2, periodSplitter)
	require.NoError(t, err)
	assert.Len(t, sentences, 4)
}

func TestNormalize_CharacterPolicy(t *testing.T) {
	raw := `Autocracy (from Greek "autokráteia") is a form of government — in which one person's will is law!
It's ruled by a single  person; e.g., a monarch.`

	sentences, err := Normalize(raw, 20, newPunkt(t))
	require.NoError(t, err)
	require.Len(t, sentences, 20)

	for _, s := range sentences {
		assert.Regexp(t, allowedRe, s)
		assert.Equal(t, strings.ToLower(s), s)
		assert.NotContains(t, s, "  ")
	}
	assert.Contains(t, sentences[0], "autocracy from greek autokrteia is a form of government")
}

func TestNormalize_QuotesOnlyWordDegenerates(t *testing.T) {
	sentences, err := Normalize(`He said "—" then left.`, 1, periodSplitter)
	require.NoError(t, err)
	assert.Equal(t, []string{"he said then left."}, sentences)
}

func TestNormalize_EmptySource(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", `"()" — !?`} {
		_, err := Normalize(raw, 20, newPunkt(t))
		assert.ErrorIs(t, err, ErrEmptySource, "input %q", raw)
	}
}

func TestNormalize_NilSegmenter(t *testing.T) {
	_, err := Normalize("text.", 1, nil)
	assert.Error(t, err)
}

func TestPunktSegmenter_SplitsOnTerminators(t *testing.T) {
	got := newPunkt(t).Segment("the sky is blue. the grass is green. water is wet.")
	require.Len(t, got, 3)
	assert.Equal(t, "the grass is green.", strings.TrimSpace(got[1]))
}

func TestNormalize_KeepsUnicodeSpaces(t *testing.T) {
	sentences, err := Normalize("It covers 5\u00a0km of land. Its capital\u202fis small.", 1, periodSplitter)
	require.NoError(t, err)
	assert.Equal(t, []string{"it covers 5 km of land.", "its capital is small."}, sentences)
}

func TestNormalize_UnicodeSpacesWithPunkt(t *testing.T) {
	sentences, err := Normalize("It covers 5\u00a0km of land.", 1, newPunkt(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"it covers 5 km of land."}, sentences)
}

package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// Translations are arbitrary UTF-8; cutting mid-rune would render a
	// garbled tail.
	long := strings.Repeat("é", 100)
	got := truncate(long, previewWidth)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", previewWidth)+"...", got)
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	assert.Equal(t, "¿Cómo estás?", truncate("¿Cómo estás?", previewWidth))
	assert.Equal(t, "", truncate("", previewWidth))
}

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"a\n\nb\tc", "a b c"},
		{"", ""},
		{"single", "single"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in))
	}
}

func TestCountCommas(t *testing.T) {
	assert.Equal(t, 0, CountCommas("no commas here"))
	assert.Equal(t, 2, CountCommas("a, b, c"))
	assert.Equal(t, 1, CountCommas("arabic،comma"))
	assert.Equal(t, 1, CountCommas("fullwidth，comma"))
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(""))
	assert.True(t, IsWhitespace("   \t\n"))
	assert.False(t, IsWhitespace("  x "))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("one two three"))
	assert.Equal(t, 1, WordCount("  single  "))
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", Unescape("Tom &amp; Jerry"))
	assert.Equal(t, `"quoted"`, Unescape("&quot;quoted&quot;"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("same", "same"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.InDelta(t, 0.0, Similarity("aaaa", "bbbb"), 0.001)
	assert.Greater(t, Similarity("Article Title", "Article Title!"), 0.9)
}

func TestLooksLikeURL(t *testing.T) {
	assert.True(t, LooksLikeURL("https://example.com/authors/jane"))
	assert.True(t, LooksLikeURL("www.example.com"))
	assert.False(t, LooksLikeURL("Jane Doe"))
}

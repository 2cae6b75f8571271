package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `
<html lang="en">
<head>
	<title>My Great Article - Example News</title>
	<meta property="og:title" content="My Great Article">
	<meta property="og:site_name" content="Example News">
	<meta name="author" content="Jane Doe">
</head>
<body>
	<nav class="sidebar">navigation links here</nav>
	<article>
		<h1>My Great Article</h1>
		<p>` + strings.Repeat("This is the actual article content, full of words. ", 40) + `</p>
		<p><a href="/related">A relative link</a> to another page.</p>
	</article>
	<footer>copyright footer text</footer>
</body>
</html>`

func TestParseExtractsArticle(t *testing.T) {
	result, err := Parse(sampleArticle, WithBaseURL("https://example.com/articles/1"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "My Great Article", result.Title)
	assert.Equal(t, "Jane Doe", result.Byline)
	assert.Equal(t, "Example News", result.SiteName)
	assert.Equal(t, "en", result.Lang)
	assert.Equal(t, "ltr", result.Dir)
	assert.Contains(t, result.TextContent, "actual article content")
	assert.NotContains(t, result.TextContent, "navigation links")
	assert.Greater(t, result.Length, 0)
}

func TestParseResolvesRelativeLinks(t *testing.T) {
	result, err := Parse(sampleArticle, WithBaseURL("https://example.com/articles/1"))
	require.NoError(t, err)
	assert.Contains(t, result.Content, "https://example.com/related")
}

func TestParseReturnsInputTooLarge(t *testing.T) {
	_, err := Parse(sampleArticle, WithMaxElemsToParse(1))
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, ErrInputTooLarge, rerr.Kind)
}

func TestParseRTLDirection(t *testing.T) {
	arabicDoc := `<html lang="ar"><body><article><p>` + strings.Repeat("مقالة كاملة هنا ", 40) + `</p></article></body></html>`
	result, err := Parse(arabicDoc)
	require.NoError(t, err)
	assert.Equal(t, "rtl", result.Dir)
}

func TestParseBytesDecodesUTF8(t *testing.T) {
	result, err := ParseBytes([]byte(sampleArticle), WithBaseURL("https://example.com/articles/1"))
	require.NoError(t, err)
	assert.Equal(t, "My Great Article", result.Title)
}

package scraper

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScraper(t *testing.T) *Scraper {
	t.Helper()
	s, err := New("https://www.vinted.fr/catalog")
	require.NoError(t, err)
	return s
}

func parse(t *testing.T, markup string) []Item {
	t.Helper()
	items, err := newTestScraper(t).Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return items
}

func TestParseExtractsItem(t *testing.T) {
	markup := `
	<html><body>
	<div class="feed-item">
		<a href="/items/123456789-iphone-13-ecran-casse?ref=catalog" title="iPhone 13 écran cassé">voir</a>
		<span class="price">120,00 €</span>
	</div>
	</body></html>`

	items := parse(t, markup)
	require.Len(t, items, 1)

	assert.Equal(t, "123456789", items[0].ID)
	assert.Equal(t, "iPhone 13 écran cassé", items[0].Title)
	assert.Equal(t, "120,00 €", items[0].Price)
	assert.Equal(t, "https://www.vinted.fr/items/123456789-iphone-13-ecran-casse?ref=catalog", items[0].URL)
}

func TestParseDeduplicatesByID(t *testing.T) {
	markup := `
	<html><body>
	<a href="/items/123456789-iphone-13" title="first occurrence">a</a>
	<a href="https://www.vinted.fr/items/123456789-iphone-13-ecran-casse" title="last occurrence">b</a>
	</body></html>`

	items := parse(t, markup)
	require.Len(t, items, 1)

	// Last occurrence wins.
	assert.Equal(t, "123456789", items[0].ID)
	assert.Equal(t, "last occurrence", items[0].Title)
}

func TestParseSkipsLinksWithoutID(t *testing.T) {
	markup := `
	<html><body>
	<a href="/items/">listing root</a>
	<a href="/items/?ref=promo">promo</a>
	<a href="/items/-iphone">dash first</a>
	<a href="/items/987654321-iphone-11-hs" title="iPhone 11 hs">ok</a>
	</body></html>`

	items := parse(t, markup)
	require.Len(t, items, 1)
	assert.Equal(t, "987654321", items[0].ID)
}

func TestParseTitleFallbacks(t *testing.T) {
	markup := `
	<html><body>
	<a href="/items/111-a">  iPhone 12 cassé  </a>
	<a href="/items/222-b"></a>
	</body></html>`

	items := parse(t, markup)
	require.Len(t, items, 2)

	assert.Equal(t, "iPhone 12 cassé", items[0].Title)
	assert.Equal(t, "(untitled)", items[1].Title)
}

func TestParsePriceIsBestEffort(t *testing.T) {
	markup := `
	<html><body>
	<div>
		<a href="/items/111-a" title="iPhone 12">a</a>
		<div><span>pas de prix ici</span><span>85 €</span></div>
	</div>
	<div>
		<a href="/items/222-b" title="iPhone 13">b</a>
	</div>
	</body></html>`

	items := parse(t, markup)
	require.Len(t, items, 2)

	assert.Equal(t, "85 €", items[0].Price)
	assert.Equal(t, "", items[1].Price)
}

func TestParseIgnoresUnrelatedLinks(t *testing.T) {
	markup := `
	<html><body>
	<a href="/member/42-someone">profil</a>
	<a href="/catalog?page=2">suivant</a>
	</body></html>`

	items := parse(t, markup)
	assert.Empty(t, items)
}

func TestFetchWrapsNetworkError(t *testing.T) {
	s := newTestScraper(t)
	s.fetchFunc = func(string) (io.Reader, error) {
		return nil, fmt.Errorf("connection refused")
	}

	_, err := s.Fetch("https://www.vinted.fr/catalog?search_text=iphone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}

package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Kenzousimba/IphoneVintedbot/helpers"
	"github.com/Kenzousimba/IphoneVintedbot/pkg/errors"
)

const (
	// itemPathMarker is the path fragment every listing link contains.
	itemPathMarker = "/items/"

	// placeholderTitle is used when a link carries neither a title attribute
	// nor visible text.
	placeholderTitle = "(untitled)"

	currencySymbol = "€"
)

// Item is a candidate listing extracted from a catalog page. Items live for
// one fetch cycle; only confirmed new ones reach the ledger.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
	URL   string `json:"url"`
}

// Scraper fetches catalog search pages and extracts candidate listings.
// The catalog markup changes shape regularly, so extraction stays tolerant:
// a link missing any one field never aborts the rest of the page.
type Scraper struct {
	origin    string
	fetchFunc func(string) (io.Reader, error)
}

// New creates a scraper. catalogURL is used only to absolutize relative
// listing links.
func New(catalogURL string) (*Scraper, error) {
	parsed, err := url.Parse(catalogURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.NewConfiguration(fmt.Sprintf("invalid catalog URL %q", catalogURL), err)
	}

	return &Scraper{
		origin:    parsed.Scheme + "://" + parsed.Host,
		fetchFunc: helpers.FetchPage,
	}, nil
}

// Fetch retrieves one search page and returns its candidate listings,
// deduplicated by id.
func (s *Scraper) Fetch(pageURL string) ([]Item, error) {
	body, err := s.fetchFunc(pageURL)
	if err != nil {
		return nil, errors.NewNetwork(pageURL, "failed to fetch search page", err)
	}
	return s.Parse(body)
}

// Parse extracts candidate listings from raw catalog markup. Links whose id
// cannot be derived are skipped silently. When the markup repeats an id, the
// last occurrence wins.
func (s *Scraper) Parse(body io.Reader) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing("", "failed to parse search page", err)
	}

	var items []Item
	index := make(map[string]int)

	doc.Find(`a[href*="` + itemPathMarker + `"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		link := s.resolveURL(strings.TrimSpace(href))
		id, err := extractItemID(link)
		if err != nil {
			return
		}

		item := Item{
			ID:    id,
			Title: extractTitle(a),
			Price: nearestPrice(a),
			URL:   link,
		}

		if pos, seen := index[id]; seen {
			items[pos] = item
		} else {
			index[id] = len(items)
			items = append(items, item)
		}
	})

	return items, nil
}

// resolveURL turns a relative listing link into an absolute one.
func (s *Scraper) resolveURL(link string) string {
	if strings.HasPrefix(link, "/") {
		return s.origin + link
	}
	return link
}

// extractItemID derives the listing id from the path segment following the
// item marker, up to the first hyphen or query-string delimiter.
func extractItemID(link string) (string, error) {
	tail, err := helpers.GetSplitPart(link, itemPathMarker, 1)
	if err != nil {
		return "", err
	}

	id := tail
	if i := strings.IndexAny(id, "-?/"); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", fmt.Errorf("no id segment in link %q", link)
	}

	return id, nil
}

// extractTitle prefers an explicit title attribute over the link text.
func extractTitle(a *goquery.Selection) string {
	if title, exists := a.Attr("title"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	if text := strings.TrimSpace(a.Text()); text != "" {
		return text
	}
	return placeholderTitle
}

// nearestPrice walks the document in order from the link and returns the
// first text node containing the currency symbol. Best effort: an empty
// string means no price was found nearby.
func nearestPrice(a *goquery.Selection) string {
	if len(a.Nodes) == 0 {
		return ""
	}

	for node := nextNode(a.Nodes[0]); node != nil; node = nextNode(node) {
		if node.Type == html.TextNode && strings.Contains(node.Data, currencySymbol) {
			return strings.TrimSpace(node.Data)
		}
	}
	return ""
}

// nextNode yields the document-order successor of n.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

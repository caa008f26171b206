package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is a single catalog search scoped to one (variant, keyword) pair.
// Queries are built once at startup and never change afterwards.
type Query struct {
	Key string
	URL string
}

// Profile describes the product being monitored: which model variants to
// search for, which condition keywords to combine them with, and which
// negative terms to append to every search string.
type Profile struct {
	Marker        string
	Variants      []string
	Keywords      []string
	NegativeTerms string
	PriceTo       int
	Order         string
}

// DefaultProfile returns the monitored iPhone profile: models 11 through 16
// combined with French damaged/locked-condition keywords.
func DefaultProfile(priceTo int) Profile {
	return Profile{
		Marker:   "iphone",
		Variants: []string{"11", "12", "13", "14", "15", "16"},
		Keywords: []string{
			"cassé", "cassée",
			"hs",
			"vitre cassé", "vitre cassée",
			"écran cassé", "ecran cassé", "ecran casse", "écran casse",
			"batterie morte", "batterie hs",
			"carte mere hs", "carte mère hs", "carte mere", "carte mère",
			"bloqué icloud", "icloud bloqué",
			"verrouillé icloud", "icloud verrouillé",
		},
		// The catalog sometimes ignores negative terms, but they cut noise
		// when honored.
		NegativeTerms: "-coque -housse -etui -film -verre -protection -cable -câble -chargeur -magsafe " +
			"-airpods -écouteurs -ecouteurs -adaptateur -usb -support -dock -skin -sticker -case -cover",
		PriceTo: priceTo,
		Order:   "newest_first",
	}
}

// BuildQueries generates one query per (variant, keyword) pair. The key and
// URL are deterministic: the same pair always yields the same query.
func BuildQueries(baseURL string, profile Profile) []Query {
	queries := make([]Query, 0, len(profile.Variants)*len(profile.Keywords))

	for _, variant := range profile.Variants {
		for _, keyword := range profile.Keywords {
			text := profile.Marker + " " + variant + " " + keyword
			if profile.NegativeTerms != "" {
				text += " " + profile.NegativeTerms
			}

			params := url.Values{}
			params.Set("search_text", text)
			params.Set("price_to", strconv.Itoa(profile.PriceTo))
			params.Set("order", profile.Order)

			queries = append(queries, Query{
				Key: profile.Marker + variant + "_" + strings.ReplaceAll(keyword, " ", "_"),
				URL: baseURL + "?" + params.Encode(),
			})
		}
	}

	return queries
}

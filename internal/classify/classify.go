package classify

import "strings"

// DefaultExclusions lists the accessory indicators that disqualify a title
// outright. Matching is substring-based over the normalized title, so short
// roots ("coqu", "protect") catch spelling variants.
var DefaultExclusions = []string{
	"coque", "housse", "étui", "etui", "flip", "folio",
	"film", "verre trempé", "verre trempe", "protect", "protection écran", "protection ecran",
	"camera lens", "objectif caméra", "objectif camera", "lentille",
	"câble", "cable", "cordon", "chargeur", "chargeur secteur", "magsafe",
	"powerbank", "batterie externe", "adaptateur", "adaptator", "usb", "prise", "dock", "station",
	"support", "trépied", "trepied", "anneau", "bague", "ring", "sticker", "skin",
	"airpods", "écouteurs", "ecouteurs", "earpods", "casque",
	"verre", "vitre de protection",
	"pour iphone", "compatible iphone", "iphone 11/12/13/14/15/16",
	"coqu", "case", "cover",
}

// Classifier decides whether a listing title represents a genuine phone
// rather than an accessory. Exclusion always wins over inclusion, so
// "coque iphone 13" is rejected even though it names a model.
type Classifier struct {
	marker     string
	exclusions []string
	tokens     [][]string
}

// New builds a classifier for the given marker term and model variants,
// using DefaultExclusions when exclusions is nil.
func New(marker string, variants []string, exclusions []string) *Classifier {
	if exclusions == nil {
		exclusions = DefaultExclusions
	}

	tokens := make([][]string, 0, len(variants))
	for _, v := range variants {
		tokens = append(tokens, variantTokens(marker, v))
	}

	return &Classifier{
		marker:     normalize(marker),
		exclusions: exclusions,
		tokens:     tokens,
	}
}

// Matches reports whether the title looks like a genuine target listing:
// no exclusion keyword, the marker term present, and at least one
// variant token present.
func (c *Classifier) Matches(title string) bool {
	t := normalize(title)

	for _, kw := range c.exclusions {
		if strings.Contains(t, kw) {
			return false
		}
	}

	if !strings.Contains(t, c.marker) {
		return false
	}

	for _, variant := range c.tokens {
		for _, tok := range variant {
			if strings.Contains(t, tok) {
				return true
			}
		}
	}

	return false
}

// variantTokens expands a model variant into the title fragments that count
// as a mention: the bare number with adjacent whitespace, the usual modifier
// suffixes in spaced and unspaced forms, and the marker-adjacent forms.
func variantTokens(marker, v string) []string {
	return []string{
		" " + v, v + " ",
		v + "pro", v + " pro", v + " pro max", v + " promax",
		v + " plus", v + " max",
		marker + " " + v, marker + v,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

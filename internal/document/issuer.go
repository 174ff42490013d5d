package document

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownIssuers maps lowercase keywords found in extracted payer/employer names
// to their canonical display names.
var knownIssuers = map[string]string{
	"fidelity":         "Fidelity Investments",
	"vanguard":         "Vanguard",
	"charles schwab":   "Charles Schwab",
	"schwab":           "Charles Schwab",
	"etrade":           "E*TRADE",
	"e*trade":          "E*TRADE",
	"robinhood":        "Robinhood",
	"merrill":          "Merrill Lynch",
	"morgan stanley":   "Morgan Stanley",
	"td ameritrade":    "TD Ameritrade",
	"interactive bro":  "Interactive Brokers",
	"betterment":       "Betterment",
	"wealthfront":      "Wealthfront",
	"chase":            "JPMorgan Chase",
	"jpmorgan":         "JPMorgan Chase",
	"wells fargo":      "Wells Fargo",
	"bank of america":  "Bank of America",
	"citibank":         "Citibank",
	"capital one":      "Capital One",
	"ally bank":        "Ally Bank",
	"marcus":           "Marcus by Goldman Sachs",
	"goldman sachs":    "Goldman Sachs",
	"american express": "American Express",
	"discover":         "Discover",
	"sofi":             "SoFi",
	"coinbase":         "Coinbase",
	"paypal":           "PayPal",
	"adp":              "ADP",
	"gusto":            "Gusto",
	"paychex":          "Paychex",
}

var (
	// Patterns for cleaning issuer names
	issuerSuffixPattern = regexp.MustCompile(`(?i)[\s,]+(inc|incorporated|corp|corporation|co|company|llc|llp|lp|ltd|na|n\.a)\.?$`)
	issuerNoise         = regexp.MustCompile(`[*#]+`)
	issuerWhitespace    = regexp.MustCompile(`\s{2,}`)
)

// NormalizeIssuer cleans an extracted payer or employer name for display and
// grouping. Known institutions map to a canonical name; anything else gets
// suffix stripping and title casing.
func NormalizeIssuer(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	for key, canonical := range knownIssuers {
		if strings.Contains(lower, key) {
			return canonical
		}
	}

	cleaned := issuerNoise.ReplaceAllString(trimmed, "")
	cleaned = issuerSuffixPattern.ReplaceAllString(cleaned, "")
	cleaned = issuerWhitespace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return trimmed
	}

	caser := cases.Title(language.English)
	words := strings.Fields(cleaned)
	for i, word := range words {
		if len(word) > 2 {
			words[i] = caser.String(strings.ToLower(word))
		} else {
			words[i] = strings.ToUpper(word)
		}
	}

	result := strings.Join(words, " ")
	if len(result) > 60 {
		result = result[:60]
	}
	return result
}

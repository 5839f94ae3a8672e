package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// CurrencyMarker is the fixed currency prefix a fare token must carry
const CurrencyMarker = "R$"

// UnknownCarrier is the sentinel used when no line of the results text
// qualifies as a carrier label
const UnknownCarrier = "Unknown airline"

var (
	fareRegex = regexp.MustCompile(`R\$\s?([\d.,]+)`)
	timeRegex = regexp.MustCompile(`\d+:\d+`)
)

// FareQuote is the transient result of parsing one results surface
type FareQuote struct {
	PriceText string
	Price     float64
	Carrier   string
}

// FareParser extracts a fare and a carrier label from the visible text of
// a rendered results surface. Parsing is pure and deterministic: the same
// text always yields the same quote.
type FareParser struct{}

// NewFareParser creates a new fare parser
func NewFareParser() *FareParser {
	return &FareParser{}
}

// ExtractFare returns the first plausible fare and a best-guess carrier
// label, or nil when no fare-shaped token is present. Absence is a valid
// "no data yet" outcome, not an error. An unparseable numeric is treated
// the same as an absent one, never as zero.
func (p *FareParser) ExtractFare(text string) *FareQuote {
	token := fareRegex.FindString(text)
	if token == "" {
		return nil
	}

	price, ok := NormalizePrice(token)
	if !ok {
		return nil
	}

	return &FareQuote{
		PriceText: token,
		Price:     price,
		Carrier:   p.carrierLabel(text),
	}
}

// NormalizePrice strips everything except digits and the comma decimal
// separator from a fare token and converts the conventional comma-decimal
// form ("R$ 1.234,56") to a dot-decimal value (1234.56)
func NormalizePrice(token string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, token)
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// carrierLabel picks the first line longer than two characters that is
// neither a price nor an HH:MM time token
func (p *FareParser) carrierLabel(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if len(line) > 2 && !strings.Contains(line, CurrencyMarker) && !timeRegex.MatchString(line) {
			return line
		}
	}
	return UnknownCarrier
}

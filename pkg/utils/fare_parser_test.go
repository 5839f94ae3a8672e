package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCard = "Acme Air\n06:10 – 14:25\nR$ 1.500,00\nNonstop"

func TestExtractFare(t *testing.T) {
	parser := NewFareParser()

	quote := parser.ExtractFare(sampleCard)
	require.NotNil(t, quote)
	require.Equal(t, "R$ 1.500,00", quote.PriceText)
	require.Equal(t, 1500.00, quote.Price)
	require.Equal(t, "Acme Air", quote.Carrier)
}

func TestExtractFareDeterministic(t *testing.T) {
	parser := NewFareParser()

	first := parser.ExtractFare(sampleCard)
	second := parser.ExtractFare(sampleCard)
	require.Equal(t, first, second)
}

func TestExtractFareAbsent(t *testing.T) {
	parser := NewFareParser()

	testCases := []struct {
		name string
		text string
	}{
		{name: "empty surface", text: ""},
		{name: "no currency marker", text: "Acme Air\n06:10 – 14:25\n1.500,00"},
		{name: "loading placeholder", text: "Carregando resultados..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Nil(t, parser.ExtractFare(tc.text))
		})
	}
}

func TestExtractFareMalformedNumeric(t *testing.T) {
	parser := NewFareParser()

	// A currency-prefixed token that does not normalize to a number is
	// treated as absent, never as a zero price.
	require.Nil(t, parser.ExtractFare("Acme Air\nR$ 1,2,3"))
	require.Nil(t, parser.ExtractFare("Acme Air\nR$ ,,"))
}

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		token    string
		expected float64
		ok       bool
	}{
		{token: "R$ 1.234,56", expected: 1234.56, ok: true},
		{token: "R$ 1.500,00", expected: 1500.00, ok: true},
		{token: "R$ 89,90", expected: 89.90, ok: true},
		{token: "R$ 742", expected: 742, ok: true},
		{token: "R$ 1,2,3", ok: false},
		{token: "R$ ,", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			price, ok := NormalizePrice(tc.token)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.expected, price)
			}
		})
	}
}

func TestCarrierLabelFallback(t *testing.T) {
	parser := NewFareParser()

	// Every line is either a price, a time token or too short, so the
	// sentinel label is used.
	quote := parser.ExtractFare("R$ 100,00\n10:30\nab")
	require.NotNil(t, quote)
	require.Equal(t, UnknownCarrier, quote.Carrier)
}

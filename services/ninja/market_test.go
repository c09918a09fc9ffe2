package ninja

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarketUrl(t *testing.T) {
	require.Equal(
		t,
		"https://poe.ninja/api/data/CurrencyOverview?league=Standard",
		MarketUrl("Standard", "Currency"),
	)
}

func TestParseMarketPayload(t *testing.T) {
	ctx := context.Background()

	lines := parseMarketPayload(ctx, []byte(`{
		"lines": [
			{"name": "Mageblood", "chaosValue": 120000.5},
			{"currencyTypeName": "Divine Orb", "chaosEquivalent": 180},
			{"detailsId": "no-name-at-all"}
		]
	}`))
	require.Len(t, lines, 3)

	require.Equal(t, "Mageblood", lines[0].Name)
	require.NotNil(t, lines[0].ChaosValue)
	require.Equal(t, 120000.5, *lines[0].ChaosValue)

	require.Equal(t, "Divine Orb", lines[1].Name)
	require.NotNil(t, lines[1].ChaosValue)
	require.Equal(t, float64(180), *lines[1].ChaosValue)

	require.Empty(t, lines[2].Name)
	require.Nil(t, lines[2].ChaosValue)
	require.NotEmpty(t, lines[2].Raw)
}

func TestParseMarketPayloadMissingLines(t *testing.T) {
	lines := parseMarketPayload(context.Background(), []byte(`{"other": []}`))
	require.NotNil(t, lines)
	require.Empty(t, lines)
}

func TestParseMarketPayloadMalformed(t *testing.T) {
	lines := parseMarketPayload(context.Background(), []byte(`<html>cloudflare says no</html>`))
	require.NotNil(t, lines)
	require.Empty(t, lines)
}

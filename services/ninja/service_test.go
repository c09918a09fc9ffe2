package ninja

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"poemarket-backend/lib/testutil"
	"poemarket-backend/services/ninja/db"

	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/ninja",
		DbSchema: db.Schema,
	})
	return NewService(setup.DB), cleanup
}

func intp(n int64) *int64 { return &n }

func TestStoreAndReadBuilds(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	captured := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	records := []BuildRecord{
		{
			Name:           "Alch & Go",
			CharacterClass: "Witch",
			Level:          intp(97),
			MainSkill:      "Fireball",
			Dps:            intp(50000),
			Life:           intp(5000),
			EnergyShield:   nil,
			Items:          []any{"Wand", "Shield"},
			SourceUrl:      "https://example.com/build",
			CapturedAt:     captured,
		},
		{
			Name:           "Unknown",
			CharacterClass: "Unknown",
			MainSkill:      "Unknown",
			Items:          []any{},
			CapturedAt:     captured,
		},
	}

	err := service.StoreBuilds(ctx, "Standard", records)
	require.NoError(t, err)

	{
		got, err := service.Builds(ctx, "Standard", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)

		first := got[0]
		require.Equal(t, "Alch & Go", first.Name)
		require.Equal(t, "Witch", first.CharacterClass)
		require.Equal(t, intp(97), first.Level)
		require.Equal(t, intp(50000), first.Dps)
		require.Nil(t, first.EnergyShield)
		require.Equal(t, []any{"Wand", "Shield"}, first.Items)
		require.Equal(t, captured, first.CapturedAt)

		require.Nil(t, got[1].Level)
		require.Nil(t, got[1].Dps)
	}
	{
		// leagues are separate partitions
		got, err := service.Builds(ctx, "Hardcore", 10)
		require.NoError(t, err)
		require.Empty(t, got)
	}
	{
		// storing again replaces the league's builds
		err := service.StoreBuilds(ctx, "Standard", records[:1])
		require.NoError(t, err)

		got, err := service.Builds(ctx, "Standard", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
}

func TestStoreAndReadMarket(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	chaos := 180.0
	lines := []MarketLine{
		{
			Name:       "Divine Orb",
			ChaosValue: &chaos,
			Raw:        json.RawMessage(`{"currencyTypeName":"Divine Orb","chaosEquivalent":180}`),
		},
		{
			Name: "Mirror Shard",
			Raw:  json.RawMessage(`{"name":"Mirror Shard"}`),
		},
	}

	err := service.StoreMarket(ctx, "Standard", "Currency", lines)
	require.NoError(t, err)

	{
		got, err := service.Market(ctx, "Standard", "Currency")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "Divine Orb", got[0].Name)
		require.NotNil(t, got[0].ChaosValue)
		require.Equal(t, 180.0, *got[0].ChaosValue)
		require.Nil(t, got[1].ChaosValue)
		require.JSONEq(t, string(lines[0].Raw), string(got[0].Raw))
	}
	{
		// categories are separate partitions
		got, err := service.Market(ctx, "Standard", "UniqueWeapon")
		require.NoError(t, err)
		require.Empty(t, got)
	}
	{
		err := service.StoreMarket(ctx, "Standard", "Currency", lines[:1])
		require.NoError(t, err)

		got, err := service.Market(ctx, "Standard", "Currency")
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
}

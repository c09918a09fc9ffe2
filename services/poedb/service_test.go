package poedb

import (
	"context"
	"testing"
	"time"

	"poemarket-backend/lib/testutil"
	"poemarket-backend/services/poedb/db"

	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/poedb",
		DbSchema: db.Schema,
	})
	return NewService(setup.DB, NewClient("")), cleanup
}

func testRecords() []AffixRecord {
	return []AffixRecord{
		{
			Name:        "+(20-29) to maximum Life",
			Kind:        AffixPrefix,
			Tier:        "T7",
			ItemLevel:   1,
			Tags:        []string{"life"},
			ItemClasses: []string{UniversalClass},
			StatRanges:  []StatRange{{Min: 20, Max: 29}},
			Source:      Source,
		},
		{
			Name:        "Adds (8-10) to (15-20) Physical Damage",
			Kind:        AffixPrefix,
			Tier:        "T5",
			ItemLevel:   68,
			Tags:        []string{"weapon", "damage"},
			ItemClasses: []string{"Axe", "Bow", "Claw", "Dagger", "Mace", "Sceptre", "Staff", "Sword", "Wand"},
			StatRanges:  []StatRange{{Min: 8, Max: 10}, {Min: 15, Max: 20}},
			Source:      Source,
		},
		{
			Name:        "of the Whelpling",
			Kind:        AffixSuffix,
			Tier:        "T1",
			ItemLevel:   10,
			Tags:        []string{"fire", "resistance"},
			ItemClasses: []string{UniversalClass},
			StatRanges:  []StatRange{},
			Source:      Source,
		},
	}
}

func TestStoreAndQueryMods(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := service.StoreMods(ctx, testRecords())
	require.NoError(t, err)

	{
		mods, err := service.Mods(ctx, ModsQuery{})
		require.NoError(t, err)
		require.Len(t, mods, 3)
	}
	{
		mods, err := service.Mods(ctx, ModsQuery{Kind: AffixSuffix})
		require.NoError(t, err)
		require.Len(t, mods, 1)
		require.Equal(t, "of the Whelpling", mods[0].Name)
		require.Equal(t, []string{"fire", "resistance"}, mods[0].Tags)
	}
	{
		// a concrete class matches its own mods plus universal ones
		mods, err := service.Mods(ctx, ModsQuery{ItemClass: "Sword"})
		require.NoError(t, err)
		require.Len(t, mods, 3)

		mods, err = service.Mods(ctx, ModsQuery{ItemClass: "Flask"})
		require.NoError(t, err)
		require.Len(t, mods, 2)
	}
	{
		mods, err := service.Mods(ctx, ModsQuery{MinItemLevel: 60})
		require.NoError(t, err)
		require.Len(t, mods, 1)
		require.Equal(t, int64(68), mods[0].ItemLevel)
	}
	{
		mods, err := service.Mods(ctx, ModsQuery{Search: "maximum life"})
		require.NoError(t, err)
		require.Len(t, mods, 1)
		require.Equal(t, "+(20-29) to maximum Life", mods[0].Name)
	}
}

func TestStoreModsReplacesAll(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := service.StoreMods(ctx, testRecords())
	require.NoError(t, err)

	err = service.StoreMods(ctx, testRecords()[:1])
	require.NoError(t, err)

	mods, err := service.Mods(ctx, ModsQuery{})
	require.NoError(t, err)
	require.Len(t, mods, 1)
}

func TestStats(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := service.StoreMods(ctx, testRecords())
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalMods)
	require.Equal(t, int64(2), stats.PrefixCount)
	require.Equal(t, int64(1), stats.SuffixCount)
}

package ninja

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBuild(t *testing.T) {
	record := NormalizeBuild(map[string]any{
		"character": "Zizaran",
		"totalDps":  "50,000",
	})

	require.Equal(t, "Zizaran", record.Name)
	require.Equal(t, "Unknown", record.CharacterClass)
	require.Equal(t, "Unknown", record.MainSkill)
	require.NotNil(t, record.Dps)
	require.Equal(t, int64(50000), *record.Dps)
	require.Nil(t, record.Level)
	require.Nil(t, record.Life)
	require.Nil(t, record.EnergyShield)
	require.Equal(t, []any{}, record.Items)
	require.False(t, record.CapturedAt.IsZero())
}

func TestNormalizeBuildKeyAliases(t *testing.T) {
	record := NormalizeBuild(map[string]any{
		"name":      "Alch & Go",
		"className": "Witch",
		"level":     float64(97),
		"mainSkill": "Fireball",
		"maxLife":   "5k",
		"es":        int64(1200),
		"poeUrl":    "https://example.com/build",
		"items":     []any{"Wand", "Shield"},
	})

	require.Equal(t, "Alch & Go", record.Name)
	require.Equal(t, "Witch", record.CharacterClass)
	require.Equal(t, "Fireball", record.MainSkill)
	require.NotNil(t, record.Level)
	require.Equal(t, int64(97), *record.Level)
	// the k suffix reads as literal zeroes
	require.NotNil(t, record.Life)
	require.Equal(t, int64(5000), *record.Life)
	require.NotNil(t, record.EnergyShield)
	require.Equal(t, int64(1200), *record.EnergyShield)
	require.Equal(t, "https://example.com/build", record.SourceUrl)
	require.Equal(t, []any{"Wand", "Shield"}, record.Items)
}

func TestNormalizeBuildMalformedNumbers(t *testing.T) {
	record := NormalizeBuild(map[string]any{
		"name": "Broken",
		"dps":  "a lot",
		"life": "",
	})

	require.Nil(t, record.Dps)
	require.Nil(t, record.Life)
}

func TestNormalizeBuildEmptyInput(t *testing.T) {
	record := NormalizeBuild(map[string]any{})

	require.Equal(t, "Unknown", record.Name)
	require.Equal(t, "Unknown", record.CharacterClass)
	require.Equal(t, "Unknown", record.MainSkill)
	require.Empty(t, record.SourceUrl)
}

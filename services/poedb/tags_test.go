package poedb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTags(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			"jewellery implies ring and amulet",
			"ring, jewellery",
			[]string{"Amulet", "Ring"},
		},
		{
			"armour expands to the armour slots",
			"armour",
			[]string{"Body Armour", "Boots", "Gloves", "Helmet"},
		},
		{
			"weapon expands to every weapon class",
			"weapon",
			[]string{"Axe", "Bow", "Claw", "Dagger", "Mace", "Sceptre", "Staff", "Sword", "Wand"},
		},
		{
			"case insensitive",
			"BELT",
			[]string{"Belt"},
		},
		{
			"empty text is universal",
			"",
			[]string{UniversalClass},
		},
		{
			"unknown tags are universal",
			"damage, elemental",
			[]string{UniversalClass},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ClassifyTags(c.text))
		})
	}
}

// substring matching means "belt" inside "beltway" still counts, this
// is accepted behavior of the heuristic
func TestClassifyTagsSubstringFalsePositive(t *testing.T) {
	require.Equal(t, []string{"Belt"}, ClassifyTags("beltway"))
}

func TestClassifyTagsDeduplicates(t *testing.T) {
	got := ClassifyTags("ring, ring, jewellery")
	require.Equal(t, []string{"Amulet", "Ring"}, got)
}

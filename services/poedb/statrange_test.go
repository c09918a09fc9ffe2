package poedb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractStatRanges(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []StatRange
	}{
		{
			"single range",
			"+(20-29) to maximum Life",
			[]StatRange{{Min: 20, Max: 29}},
		},
		{
			"multiple ranges in order",
			"Adds (8-10) to (15-20) Physical Damage",
			[]StatRange{{Min: 8, Max: 10}, {Min: 15, Max: 20}},
		},
		{
			"no ranges",
			"+# to maximum Life",
			[]StatRange{},
		},
		{
			"negative numbers are not matched",
			"(-10--5) reduced something",
			[]StatRange{},
		},
		{
			"inverted range kept as written",
			"(29-20) backwards",
			[]StatRange{{Min: 29, Max: 20}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ExtractStatRanges(c.text))
		})
	}
}

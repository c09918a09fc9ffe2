package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "fiery damage", NormalizeName("  Fiery   Damage\n"))
	require.Equal(t, "of the whelpling", NormalizeName("of the Whelpling"))
}

func TestParseOptionalInt(t *testing.T) {
	intp := func(n int64) *int64 { return &n }

	cases := []struct {
		name  string
		input any
		want  *int64
	}{
		{"nil", nil, nil},
		{"int", 97, intp(97)},
		{"int64", int64(97), intp(97)},
		{"float truncates", 97.9, intp(97)},
		{"plain string", "12345", intp(12345)},
		{"thousands separators", "50,000", intp(50000)},
		{"float string truncates", "97.9", intp(97)},
		{"empty string", "", nil},
		{"garbage", "abc", nil},
		{"unsupported type", []string{"97"}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ParseOptionalInt(c.input))
		})
	}
}

// the k suffix is substituted with literal digits, not multiplied, so
// "1.2k" reads as "1.2000" and truncates to 1
func TestParseOptionalIntKiloSuffix(t *testing.T) {
	got := ParseOptionalInt("1.2k")
	require.NotNil(t, got)
	require.Equal(t, int64(1), *got)

	got = ParseOptionalInt("5K")
	require.NotNil(t, got)
	require.Equal(t, int64(5000), *got)
}

func TestFirstInt(t *testing.T) {
	require.Equal(t, int64(68), FirstInt("68", 1))
	require.Equal(t, int64(68), FirstInt("68-84", 1))
	require.Equal(t, int64(68), FirstInt("ilvl 68+", 1))
	require.Equal(t, int64(1), FirstInt("none", 1))
	require.Equal(t, int64(1), FirstInt("", 1))
}

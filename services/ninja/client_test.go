package ninja

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNextData(t *testing.T) {
	raw := json.RawMessage(`{
		"props": {
			"pageProps": {
				"builds": [
					{"character": "Foo", "class": "Witch", "level": "90"}
				]
			}
		}
	}`)

	builds := parseNextData(raw)
	require.Len(t, builds, 1)

	record := NormalizeBuild(builds[0])
	require.Equal(t, "Foo", record.Name)
	require.Equal(t, "Witch", record.CharacterClass)
	require.NotNil(t, record.Level)
	require.Equal(t, int64(90), *record.Level)
}

func TestParseNextDataWrappedList(t *testing.T) {
	raw := json.RawMessage(`{
		"props": {
			"pageProps": {
				"snapshot": {
					"characters": [
						{"name": "A"},
						{"name": "B"}
					]
				}
			}
		}
	}`)

	builds := parseNextData(raw)
	require.Len(t, builds, 2)
}

func TestParseNextDataAbsentOrMalformed(t *testing.T) {
	require.Nil(t, parseNextData(nil))
	require.Nil(t, parseNextData(json.RawMessage(`null`)))
	require.Nil(t, parseNextData(json.RawMessage(`not json`)))
	require.Nil(t, parseNextData(json.RawMessage(`{"props":{"pageProps":{}}}`)))
}

func TestFlattenCaptured(t *testing.T) {
	direct := flattenCaptured([]byte(`[{"name":"A"},{"name":"B"}]`))
	require.Len(t, direct, 2)

	wrapped := flattenCaptured([]byte(`{"builds":[{"name":"A"}]}`))
	require.Len(t, wrapped, 1)

	require.Nil(t, flattenCaptured([]byte(`"just a string"`)))
	require.Nil(t, flattenCaptured([]byte(`{"unrelated":true}`)))
	require.Nil(t, flattenCaptured([]byte(`garbage`)))
}

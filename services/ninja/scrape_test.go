package ninja

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	embedded    []map[string]any
	embeddedErr error
	dom         []map[string]any
	domErr      error
	intercepted []map[string]any

	embeddedCalls    int
	domCalls         int
	interceptedCalls int
}

func (f *fakeSource) EmbeddedBuilds(ctx context.Context) ([]map[string]any, error) {
	f.embeddedCalls++
	return f.embedded, f.embeddedErr
}

func (f *fakeSource) DOMBuilds(ctx context.Context) ([]map[string]any, error) {
	f.domCalls++
	return f.dom, f.domErr
}

func (f *fakeSource) InterceptedBuilds(ctx context.Context) ([]map[string]any, error) {
	f.interceptedCalls++
	return f.intercepted, nil
}

func TestExtractBuildsFirstStrategyWins(t *testing.T) {
	src := &fakeSource{
		embedded: []map[string]any{{"name": "Embedded"}},
		dom:      []map[string]any{{"name": "Dom"}},
	}

	records, attempts, err := extractBuilds(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Embedded", records[0].Name)

	// later strategies are never consulted once one yields records
	require.Equal(t, 1, src.embeddedCalls)
	require.Equal(t, 0, src.domCalls)
	require.Equal(t, 0, src.interceptedCalls)

	require.Len(t, attempts, 1)
	require.Equal(t, StrategyEmbedded, attempts[0].Strategy)
	require.Equal(t, 1, attempts[0].Records)
}

func TestExtractBuildsFallsThroughEmptyStrategies(t *testing.T) {
	src := &fakeSource{
		intercepted: []map[string]any{{"name": "Captured"}, {"name": "Another"}},
	}

	records, attempts, err := extractBuilds(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Captured", records[0].Name)

	require.Equal(t, 1, src.embeddedCalls)
	require.Equal(t, 1, src.domCalls)
	require.Equal(t, 1, src.interceptedCalls)

	require.Len(t, attempts, 3)
	require.Equal(t, StrategyNetwork, attempts[2].Strategy)
	require.Equal(t, 2, attempts[2].Records)
}

func TestExtractBuildsAllEmpty(t *testing.T) {
	src := &fakeSource{}

	records, attempts, err := extractBuilds(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
	require.Len(t, attempts, 3)
}

func TestExtractBuildsStrategyErrorAborts(t *testing.T) {
	boom := errors.New("page exploded")
	src := &fakeSource{
		domErr:      boom,
		intercepted: []map[string]any{{"name": "Captured"}},
	}

	records, _, err := extractBuilds(context.Background(), src)
	require.ErrorIs(t, err, boom)
	require.Nil(t, records)
	require.Equal(t, 0, src.interceptedCalls)
}

func TestBuildsUrl(t *testing.T) {
	require.Equal(t, "https://poe.ninja/builds/standard", BuildsUrl("Standard"))
	require.Equal(t, "https://poe.ninja/builds/settlers-of-kalguur", BuildsUrl("Settlers of Kalguur"))
}

package ninja

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"poemarket-backend/lib/browser"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ninja")

const baseUrl = "https://poe.ninja"

// selectors the builds page is known to render its entries under
const buildSelectors = `.build-card, .character-row, [class*="Build"], table`

const (
	StrategyEmbedded = "embedded"
	StrategyDOM      = "dom"
	StrategyNetwork  = "network"
)

// buildSource is one open builds page viewed through the three
// extraction strategies. Splitting it from the orchestration makes the
// fallback order testable without a browser.
type buildSource interface {
	EmbeddedBuilds(ctx context.Context) ([]map[string]any, error)
	DOMBuilds(ctx context.Context) ([]map[string]any, error)
	InterceptedBuilds(ctx context.Context) ([]map[string]any, error)
}

func BuildsUrl(league string) string {
	slug := strings.ReplaceAll(strings.ToLower(league), " ", "-")
	return fmt.Sprintf("%s/builds/%s", baseUrl, url.PathEscape(slug))
}

// ExtractBuilds opens a headless browser session against the builds
// page for the league and runs the extraction strategies. The session
// is owned by this one invocation and released on every exit path.
func ExtractBuilds(ctx context.Context, league string) ([]BuildRecord, []ExtractionAttempt, error) {
	ctx, span := tracer.Start(ctx, "ExtractBuilds")
	defer span.End()
	span.SetAttributes(attribute.String("league", league))

	session, err := browser.NewSession(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}
	defer session.Release()

	pageUrl := BuildsUrl(league)
	slog.InfoContext(ctx, "navigating to builds page", "url", pageUrl)

	err = session.Navigate(pageUrl, browser.NavigationTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("navigate to %s: %w", pageUrl, err)
	}

	err = session.WaitVisible(buildSelectors, browser.ElementTimeout)
	if err != nil {
		// not fatal, the page may still expose data through the
		// embedded blob or network responses
		slog.WarnContext(ctx, "build elements did not appear", "err", err)
	}

	records, attempts, err := extractBuilds(ctx, pageSource{session: session})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, attempts, err
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, attempts, nil
}

// extractBuilds attempts the strategies in strict priority order. A
// strategy yielding zero records falls through to the next one; a
// strategy returning an error aborts the whole extraction. All three
// coming up empty is a valid, empty result.
func extractBuilds(ctx context.Context, src buildSource) ([]BuildRecord, []ExtractionAttempt, error) {
	strategies := []struct {
		name string
		run  func(context.Context) ([]map[string]any, error)
	}{
		{StrategyEmbedded, src.EmbeddedBuilds},
		{StrategyDOM, src.DOMBuilds},
		{StrategyNetwork, src.InterceptedBuilds},
	}

	var attempts []ExtractionAttempt
	for _, strategy := range strategies {
		raw, err := strategy.run(ctx)
		if err != nil {
			return nil, attempts, fmt.Errorf("%s extraction: %w", strategy.name, err)
		}

		attempts = append(attempts, ExtractionAttempt{
			Strategy: strategy.name,
			Records:  len(raw),
		})
		slog.DebugContext(ctx, "extraction attempt", "strategy", strategy.name, "records", len(raw))

		if len(raw) == 0 {
			continue
		}

		records := make([]BuildRecord, 0, len(raw))
		for _, r := range raw {
			records = append(records, NormalizeBuild(r))
		}
		return records, attempts, nil
	}

	return []BuildRecord{}, attempts, nil
}

package ninja

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"poemarket-backend/lib/browser"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func MarketUrl(league, category string) string {
	return fmt.Sprintf(
		"%s/api/data/%sOverview?league=%s",
		baseUrl, url.PathEscape(category), url.QueryEscape(league),
	)
}

// browsers render raw API responses inside a <pre> element; fall back
// to the whole body text when that is missing
const marketBodyScript = `(() => {
	const pre = document.querySelector('pre');
	if (pre) {
		return pre.textContent;
	}
	return document.body ? document.body.innerText : '';
})()`

// FetchMarketSnapshot drives a browser session straight at the data
// API for one league and category. Any status other than 200 is
// fatal. The session is released on every exit path.
func FetchMarketSnapshot(ctx context.Context, league, category string) ([]MarketLine, error) {
	ctx, span := tracer.Start(ctx, "FetchMarketSnapshot")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league),
		attribute.String("category", category),
	)

	session, err := browser.NewSession(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer session.Release()

	apiUrl := MarketUrl(league, category)
	slog.InfoContext(ctx, "fetching market snapshot", "url", apiUrl)

	res, err := session.NavigateForResponse(apiUrl, browser.NavigationTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("navigate to %s: %w", apiUrl, err)
	}
	if res != nil && res.Status != http.StatusOK {
		err := fmt.Errorf("market api returned status %d", res.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var body string
	err = session.Evaluate(marketBodyScript, &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("read market response body: %w", err)
	}

	lines := parseMarketPayload(ctx, []byte(body))
	span.SetAttributes(attribute.Int("lines", len(lines)))
	return lines, nil
}

// parseMarketPayload decodes the snapshot body and returns the array
// under the lines key. A missing key or an undecodable body both
// yield an empty result.
func parseMarketPayload(ctx context.Context, body []byte) []MarketLine {
	var payload struct {
		Lines []json.RawMessage `json:"lines"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.WarnContext(ctx, "market payload is not json", "err", err)
		return []MarketLine{}
	}

	lines := make([]MarketLine, 0, len(payload.Lines))
	for _, raw := range payload.Lines {
		lines = append(lines, parseMarketLine(raw))
	}
	return lines
}

// the common fields across category payload shapes; currency
// endpoints use a different naming than item endpoints
func parseMarketLine(raw json.RawMessage) MarketLine {
	var fields struct {
		Name             string   `json:"name"`
		CurrencyTypeName string   `json:"currencyTypeName"`
		ChaosValue       *float64 `json:"chaosValue"`
		ChaosEquivalent  *float64 `json:"chaosEquivalent"`
	}
	// best effort, the raw line is kept either way
	_ = json.Unmarshal(raw, &fields)

	name := fields.Name
	if name == "" {
		name = fields.CurrencyTypeName
	}
	chaos := fields.ChaosValue
	if chaos == nil {
		chaos = fields.ChaosEquivalent
	}

	return MarketLine{
		Name:       name,
		ChaosValue: chaos,
		Raw:        raw,
	}
}

package poedb

import (
	"context"
	"log/slog"
	"strings"

	"poemarket-backend/lib/htmlutil"
	"poemarket-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/poedb")

// ParseModTable turns every recognized mod table in the document into
// affix records for the given kind. Column positions are a heuristic
// tied to poedb's current markup: 0 = name, 1 = tier, 2 = item level,
// 3 = tags. There is no header-based remapping; if the site reorders
// its columns this parser degrades rather than adapts. Rows that do
// not fit the shape are skipped with a diagnostic, partial output is
// the expected steady state.
func ParseModTable(ctx context.Context, doc *goquery.Document, kind AffixKind) []AffixRecord {
	ctx, span := tracer.Start(ctx, "ParseModTable")
	defer span.End()

	records := []AffixRecord{}
	skipped := 0

	doc.Find("table.table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			// header rows only exist to be skipped
			if row.Find("th").Length() > 0 {
				return
			}

			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}

			record, ok := parseModRow(cells, kind)
			if !ok {
				skipped++
				slog.DebugContext(ctx, "skipping mod row", "kind", kind, "cells", cells.Length())
				return
			}
			records = append(records, record)
		})
	})

	span.SetAttributes(
		attribute.String("kind", string(kind)),
		attribute.Int("records", len(records)),
		attribute.Int("skipped", skipped),
	)
	return records
}

func parseModRow(cells *goquery.Selection, kind AffixKind) (AffixRecord, bool) {
	name := htmlutil.CleanText(cells.Get(0))

	// guards against stray header rows the th check did not catch
	lowered := strings.ToLower(name)
	if name == "" || lowered == "name" || lowered == "mod" {
		return AffixRecord{}, false
	}

	tier := htmlutil.CleanText(cells.Get(1))
	if tier == "" {
		tier = "T1"
	}

	// the cell may hold "68", "68-84" or "68+", only the first run of
	// digits matters
	itemLevel := textutil.FirstInt(htmlutil.CleanText(cells.Get(2)), 1)

	tagText := ""
	if cells.Length() > 3 {
		tagText = htmlutil.CleanText(cells.Get(3))
	}

	return AffixRecord{
		Name:        name,
		Kind:        kind,
		Tier:        tier,
		ItemLevel:   itemLevel,
		Tags:        splitTags(tagText),
		ItemClasses: ClassifyTags(tagText),
		StatRanges:  ExtractStatRanges(name),
		Source:      Source,
	}, true
}

func splitTags(tagText string) []string {
	if tagText == "" {
		return []string{}
	}
	parts := strings.Split(tagText, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

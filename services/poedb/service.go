package poedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"poemarket-backend/lib/textutil"
	"poemarket-backend/services/poedb/db"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	client *Client
}

func NewService(database *sql.DB, client *Client) Service {
	return Service{
		db:     database,
		qry:    db.New(database),
		client: client,
	}
}

type ScrapeModsResult struct {
	PrefixCount int `json:"prefix_count"`
	SuffixCount int `json:"suffix_count"`
	Total       int `json:"total"`
}

// ScrapeMods fetches both mod tables from poedb and replaces the
// entire stored mod set with the fresh records.
func (s Service) ScrapeMods(ctx context.Context) (ScrapeModsResult, error) {
	ctx, span := tracer.Start(ctx, "ScrapeMods")
	defer span.End()

	prefixes, err := s.scrapeKind(ctx, AffixPrefix)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScrapeModsResult{}, err
	}
	suffixes, err := s.scrapeKind(ctx, AffixSuffix)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScrapeModsResult{}, err
	}

	err = s.StoreMods(ctx, append(prefixes, suffixes...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScrapeModsResult{}, err
	}

	result := ScrapeModsResult{
		PrefixCount: len(prefixes),
		SuffixCount: len(suffixes),
		Total:       len(prefixes) + len(suffixes),
	}
	span.SetAttributes(
		attribute.Int("prefix_count", result.PrefixCount),
		attribute.Int("suffix_count", result.SuffixCount),
	)
	return result, nil
}

func (s Service) scrapeKind(ctx context.Context, kind AffixKind) ([]AffixRecord, error) {
	slog.InfoContext(ctx, "scraping mods", "kind", kind)
	doc, err := s.client.FetchModTables(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s mods: %w", kind, err)
	}
	records := ParseModTable(ctx, doc, kind)
	slog.InfoContext(ctx, "parsed mod tables", "kind", kind, "records", len(records))
	return records, nil
}

// StoreMods replaces all stored mods. Mods are global, there is no
// partition key.
func (s Service) StoreMods(ctx context.Context, records []AffixRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteAllMods(ctx)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, record := range records {
		params, err := createModParams(record, now)
		if err != nil {
			slog.WarnContext(ctx, "failed to encode mod record", "name", record.Name, "err", err)
			continue
		}
		err = txqry.CreateMod(ctx, params)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func createModParams(record AffixRecord, now int64) (db.CreateModParams, error) {
	tags, err := json.Marshal(record.Tags)
	if err != nil {
		return db.CreateModParams{}, err
	}
	classes, err := json.Marshal(record.ItemClasses)
	if err != nil {
		return db.CreateModParams{}, err
	}
	ranges, err := json.Marshal(record.StatRanges)
	if err != nil {
		return db.CreateModParams{}, err
	}
	return db.CreateModParams{
		Name:        record.Name,
		Kind:        string(record.Kind),
		Tier:        record.Tier,
		ItemLevel:   record.ItemLevel,
		Tags:        string(tags),
		ItemClasses: string(classes),
		StatRanges:  string(ranges),
		Source:      record.Source,
		CreatedAt:   now,
	}, nil
}

type ModsQuery struct {
	// concrete item class, "all" or "" returns every class; concrete
	// classes also match universal mods
	ItemClass string
	// "" returns both kinds
	Kind         AffixKind
	MinItemLevel int64
	MaxItemLevel int64
	// substring match on the mod name, results ranked by Jaro-Winkler
	// similarity
	Search string
}

// Mods returns stored affix records matching the query. Kind and item
// level filtering happen in SQL; item class membership and name
// search are applied on the decoded records since those columns hold
// JSON arrays.
func (s Service) Mods(ctx context.Context, query ModsQuery) ([]AffixRecord, error) {
	ctx, span := tracer.Start(ctx, "Mods")
	defer span.End()

	minIlvl := query.MinItemLevel
	if minIlvl < 1 {
		minIlvl = 1
	}
	maxIlvl := query.MaxItemLevel
	if maxIlvl == 0 {
		maxIlvl = 100
	}

	rows, err := s.qry.ListMods(ctx, db.ListModsParams{
		Kind:         string(query.Kind),
		MinItemLevel: minIlvl,
		MaxItemLevel: maxIlvl,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	records := make([]AffixRecord, 0, len(rows))
	for _, row := range rows {
		record, err := decodeMod(row)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode stored mod", "id", row.ID, "err", err)
			continue
		}
		if !matchesItemClass(record, query.ItemClass) {
			continue
		}
		records = append(records, record)
	}

	if query.Search != "" {
		records = rankBySearch(records, query.Search)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func decodeMod(row db.Mod) (AffixRecord, error) {
	record := AffixRecord{
		Name:      row.Name,
		Kind:      AffixKind(row.Kind),
		Tier:      row.Tier,
		ItemLevel: row.ItemLevel,
		Source:    row.Source,
	}
	if err := json.Unmarshal([]byte(row.Tags), &record.Tags); err != nil {
		return AffixRecord{}, err
	}
	if err := json.Unmarshal([]byte(row.ItemClasses), &record.ItemClasses); err != nil {
		return AffixRecord{}, err
	}
	if err := json.Unmarshal([]byte(row.StatRanges), &record.StatRanges); err != nil {
		return AffixRecord{}, err
	}
	return record, nil
}

func matchesItemClass(record AffixRecord, itemClass string) bool {
	if itemClass == "" || strings.EqualFold(itemClass, "all") {
		return true
	}
	for _, class := range record.ItemClasses {
		if strings.EqualFold(class, itemClass) || class == UniversalClass {
			return true
		}
	}
	return false
}

const searchSimilarityFloor = 0.8

func rankBySearch(records []AffixRecord, search string) []AffixRecord {
	target := textutil.NormalizeName(search)

	type scored struct {
		record AffixRecord
		sim    float64
	}
	var kept []scored
	for _, record := range records {
		name := textutil.NormalizeName(record.Name)
		sim := matchr.JaroWinkler(name, target, false)
		if strings.Contains(name, target) || sim >= searchSimilarityFloor {
			kept = append(kept, scored{record: record, sim: sim})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].sim > kept[j].sim
	})

	out := make([]AffixRecord, 0, len(kept))
	for _, s := range kept {
		out = append(out, s.record)
	}
	return out
}

type Stats struct {
	TotalMods   int64 `json:"total_mods"`
	PrefixCount int64 `json:"prefix_count"`
	SuffixCount int64 `json:"suffix_count"`
}

func (s Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.qry.CountMods(ctx)
	if err != nil {
		return Stats{}, err
	}
	prefixes, err := s.qry.CountModsByKind(ctx, string(AffixPrefix))
	if err != nil {
		return Stats{}, err
	}
	suffixes, err := s.qry.CountModsByKind(ctx, string(AffixSuffix))
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalMods:   total,
		PrefixCount: prefixes,
		SuffixCount: suffixes,
	}, nil
}

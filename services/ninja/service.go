package ninja

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"poemarket-backend/services/ninja/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// ScrapeBuilds extracts builds for the league and replaces every
// stored build under that league partition with the fresh set.
// Callers get either records or a single error, never both.
func (s Service) ScrapeBuilds(ctx context.Context, league string) ([]BuildRecord, []ExtractionAttempt, error) {
	ctx, span := tracer.Start(ctx, "ScrapeBuilds")
	defer span.End()
	span.SetAttributes(attribute.String("league", league))

	records, attempts, err := ExtractBuilds(ctx, league)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, attempts, err
	}

	err = s.StoreBuilds(ctx, league, records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, attempts, err
	}

	slog.InfoContext(ctx, "scraped builds", "league", league, "records", len(records))
	return records, attempts, nil
}

func (s Service) StoreBuilds(ctx context.Context, league string, records []BuildRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteBuildsByLeague(ctx, league)
	if err != nil {
		return err
	}

	for _, record := range records {
		items, err := json.Marshal(record.Items)
		if err != nil {
			slog.WarnContext(ctx, "failed to encode build items", "name", record.Name, "err", err)
			items = []byte("[]")
		}
		err = txqry.CreateBuild(ctx, db.CreateBuildParams{
			League:         league,
			Name:           record.Name,
			CharacterClass: record.CharacterClass,
			Level:          nullInt(record.Level),
			MainSkill:      record.MainSkill,
			Dps:            nullInt(record.Dps),
			Life:           nullInt(record.Life),
			EnergyShield:   nullInt(record.EnergyShield),
			Items:          string(items),
			SourceUrl:      record.SourceUrl,
			CapturedAt:     record.CapturedAt.Unix(),
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Service) Builds(ctx context.Context, league string, limit int64) ([]BuildRecord, error) {
	ctx, span := tracer.Start(ctx, "Builds")
	defer span.End()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.qry.GetBuildsByLeague(ctx, db.GetBuildsByLeagueParams{
		League: league,
		Limit:  limit,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	records := make([]BuildRecord, 0, len(rows))
	for _, row := range rows {
		var items []any
		err := json.Unmarshal([]byte(row.Items), &items)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode stored build items", "id", row.ID, "err", err)
			items = []any{}
		}
		records = append(records, BuildRecord{
			Name:           row.Name,
			CharacterClass: row.CharacterClass,
			Level:          optionalInt(row.Level),
			MainSkill:      row.MainSkill,
			Dps:            optionalInt(row.Dps),
			Life:           optionalInt(row.Life),
			EnergyShield:   optionalInt(row.EnergyShield),
			Items:          items,
			SourceUrl:      row.SourceUrl,
			CapturedAt:     time.Unix(row.CapturedAt, 0).UTC(),
		})
	}
	return records, nil
}

// ScrapeMarket fetches a market snapshot and replaces the stored
// lines for the (league, category) partition.
func (s Service) ScrapeMarket(ctx context.Context, league, category string) ([]MarketLine, error) {
	ctx, span := tracer.Start(ctx, "ScrapeMarket")
	defer span.End()
	span.SetAttributes(
		attribute.String("league", league),
		attribute.String("category", category),
	)

	lines, err := FetchMarketSnapshot(ctx, league, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	err = s.StoreMarket(ctx, league, category, lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slog.InfoContext(ctx, "scraped market snapshot", "league", league, "category", category, "lines", len(lines))
	return lines, nil
}

func (s Service) StoreMarket(ctx context.Context, league, category string, lines []MarketLine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteMarketItems(ctx, db.DeleteMarketItemsParams{
		League:   league,
		Category: category,
	})
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, line := range lines {
		err = txqry.CreateMarketItem(ctx, db.CreateMarketItemParams{
			League:     league,
			Category:   category,
			Name:       line.Name,
			ChaosValue: nullFloat(line.ChaosValue),
			Line:       string(line.Raw),
			CapturedAt: now,
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Service) Market(ctx context.Context, league, category string) ([]MarketLine, error) {
	rows, err := s.qry.GetMarketItems(ctx, db.GetMarketItemsParams{
		League:   league,
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	lines := make([]MarketLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, MarketLine{
			Name:       row.Name,
			ChaosValue: optionalFloat(row.ChaosValue),
			Raw:        json.RawMessage(row.Line),
		})
	}
	return lines, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func optionalInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func optionalFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

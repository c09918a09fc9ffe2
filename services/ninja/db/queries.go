package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Build struct {
	ID             int64
	League         string
	Name           string
	CharacterClass string
	Level          sql.NullInt64
	MainSkill      string
	Dps            sql.NullInt64
	Life           sql.NullInt64
	EnergyShield   sql.NullInt64
	Items          string
	SourceUrl      string
	CapturedAt     int64
}

const deleteBuildsByLeague = `
DELETE FROM builds WHERE league = ?
`

func (q *Queries) DeleteBuildsByLeague(ctx context.Context, league string) error {
	_, err := q.db.ExecContext(ctx, deleteBuildsByLeague, league)
	return err
}

const createBuild = `
INSERT INTO builds (league, name, character_class, level, main_skill, dps, life, energy_shield, items, source_url, captured_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateBuildParams struct {
	League         string
	Name           string
	CharacterClass string
	Level          sql.NullInt64
	MainSkill      string
	Dps            sql.NullInt64
	Life           sql.NullInt64
	EnergyShield   sql.NullInt64
	Items          string
	SourceUrl      string
	CapturedAt     int64
}

func (q *Queries) CreateBuild(ctx context.Context, arg CreateBuildParams) error {
	_, err := q.db.ExecContext(ctx, createBuild,
		arg.League,
		arg.Name,
		arg.CharacterClass,
		arg.Level,
		arg.MainSkill,
		arg.Dps,
		arg.Life,
		arg.EnergyShield,
		arg.Items,
		arg.SourceUrl,
		arg.CapturedAt,
	)
	return err
}

const getBuildsByLeague = `
SELECT id, league, name, character_class, level, main_skill, dps, life, energy_shield, items, source_url, captured_at
FROM builds
WHERE league = ?
ORDER BY id
LIMIT ?
`

type GetBuildsByLeagueParams struct {
	League string
	Limit  int64
}

func (q *Queries) GetBuildsByLeague(ctx context.Context, arg GetBuildsByLeagueParams) ([]Build, error) {
	rows, err := q.db.QueryContext(ctx, getBuildsByLeague, arg.League, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Build
	for rows.Next() {
		var i Build
		err := rows.Scan(
			&i.ID,
			&i.League,
			&i.Name,
			&i.CharacterClass,
			&i.Level,
			&i.MainSkill,
			&i.Dps,
			&i.Life,
			&i.EnergyShield,
			&i.Items,
			&i.SourceUrl,
			&i.CapturedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type MarketItem struct {
	ID         int64
	League     string
	Category   string
	Name       string
	ChaosValue sql.NullFloat64
	Line       string
	CapturedAt int64
}

const deleteMarketItems = `
DELETE FROM market_items WHERE league = ? AND category = ?
`

type DeleteMarketItemsParams struct {
	League   string
	Category string
}

func (q *Queries) DeleteMarketItems(ctx context.Context, arg DeleteMarketItemsParams) error {
	_, err := q.db.ExecContext(ctx, deleteMarketItems, arg.League, arg.Category)
	return err
}

const createMarketItem = `
INSERT INTO market_items (league, category, name, chaos_value, line, captured_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateMarketItemParams struct {
	League     string
	Category   string
	Name       string
	ChaosValue sql.NullFloat64
	Line       string
	CapturedAt int64
}

func (q *Queries) CreateMarketItem(ctx context.Context, arg CreateMarketItemParams) error {
	_, err := q.db.ExecContext(ctx, createMarketItem,
		arg.League,
		arg.Category,
		arg.Name,
		arg.ChaosValue,
		arg.Line,
		arg.CapturedAt,
	)
	return err
}

const getMarketItems = `
SELECT id, league, category, name, chaos_value, line, captured_at
FROM market_items
WHERE league = ? AND category = ?
ORDER BY id
`

type GetMarketItemsParams struct {
	League   string
	Category string
}

func (q *Queries) GetMarketItems(ctx context.Context, arg GetMarketItemsParams) ([]MarketItem, error) {
	rows, err := q.db.QueryContext(ctx, getMarketItems, arg.League, arg.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MarketItem
	for rows.Next() {
		var i MarketItem
		err := rows.Scan(
			&i.ID,
			&i.League,
			&i.Category,
			&i.Name,
			&i.ChaosValue,
			&i.Line,
			&i.CapturedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

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

// Mod mirrors one row of the mods table. The tags, item_classes and
// stat_ranges columns hold JSON-encoded text.
type Mod struct {
	ID          int64
	Name        string
	Kind        string
	Tier        string
	ItemLevel   int64
	Tags        string
	ItemClasses string
	StatRanges  string
	Source      string
	CreatedAt   int64
}

const deleteAllMods = `
DELETE FROM mods
`

func (q *Queries) DeleteAllMods(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllMods)
	return err
}

const createMod = `
INSERT INTO mods (name, kind, tier, item_level, tags, item_classes, stat_ranges, source, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateModParams struct {
	Name        string
	Kind        string
	Tier        string
	ItemLevel   int64
	Tags        string
	ItemClasses string
	StatRanges  string
	Source      string
	CreatedAt   int64
}

func (q *Queries) CreateMod(ctx context.Context, arg CreateModParams) error {
	_, err := q.db.ExecContext(ctx, createMod,
		arg.Name,
		arg.Kind,
		arg.Tier,
		arg.ItemLevel,
		arg.Tags,
		arg.ItemClasses,
		arg.StatRanges,
		arg.Source,
		arg.CreatedAt,
	)
	return err
}

const listMods = `
SELECT id, name, kind, tier, item_level, tags, item_classes, stat_ranges, source, created_at
FROM mods
WHERE (?1 = '' OR kind = ?1)
  AND item_level >= ?2
  AND item_level <= ?3
ORDER BY id
`

type ListModsParams struct {
	Kind         string
	MinItemLevel int64
	MaxItemLevel int64
}

func (q *Queries) ListMods(ctx context.Context, arg ListModsParams) ([]Mod, error) {
	rows, err := q.db.QueryContext(ctx, listMods, arg.Kind, arg.MinItemLevel, arg.MaxItemLevel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Mod
	for rows.Next() {
		var i Mod
		err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Kind,
			&i.Tier,
			&i.ItemLevel,
			&i.Tags,
			&i.ItemClasses,
			&i.StatRanges,
			&i.Source,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countModsByKind = `
SELECT COUNT(*) FROM mods WHERE kind = ?
`

func (q *Queries) CountModsByKind(ctx context.Context, kind string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countModsByKind, kind).Scan(&count)
	return count, err
}

const countMods = `
SELECT COUNT(*) FROM mods
`

func (q *Queries) CountMods(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMods).Scan(&count)
	return count, err
}

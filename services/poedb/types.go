package poedb

// AffixKind distinguishes the two mod tables poedb serves.
type AffixKind string

const (
	AffixPrefix AffixKind = "prefix"
	AffixSuffix AffixKind = "suffix"
)

// UniversalClass is the sentinel item class assigned when no tag
// matched; queries for any concrete item class also match it.
const UniversalClass = "universal"

// Source marks where a record was scraped from.
const Source = "poedb"

type StatRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// AffixRecord is one crafting modifier parsed out of a poedb mod
// table row. ItemClasses is never empty and StatRanges preserves the
// left-to-right order the ranges appear in the mod name.
type AffixRecord struct {
	Name        string      `json:"name"`
	Kind        AffixKind   `json:"affixKind"`
	Tier        string      `json:"tier"`
	ItemLevel   int64       `json:"itemLevel"`
	Tags        []string    `json:"tags"`
	ItemClasses []string    `json:"itemClasses"`
	StatRanges  []StatRange `json:"statRanges"`
	Source      string      `json:"source"`
}

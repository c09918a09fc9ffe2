package ninja

import (
	"encoding/json"
	"time"
)

// BuildRecord is the canonical player build snapshot. Optional numeric
// fields are nil when the source did not carry a usable value, never a
// malformed string.
type BuildRecord struct {
	Name           string    `json:"name"`
	CharacterClass string    `json:"characterClass"`
	Level          *int64    `json:"level"`
	MainSkill      string    `json:"mainSkill"`
	Dps            *int64    `json:"dps"`
	Life           *int64    `json:"life"`
	EnergyShield   *int64    `json:"energyShield"`
	Items          []any     `json:"items"`
	SourceUrl      string    `json:"sourceUrl,omitempty"`
	CapturedAt     time.Time `json:"capturedAt"`
}

// ExtractionAttempt records, per strategy, how many raw records it
// produced. Diagnostic only, never persisted.
type ExtractionAttempt struct {
	Strategy string `json:"strategy"`
	Records  int    `json:"records"`
}

// MarketLine is one entry of a poe.ninja market snapshot. The payload
// shape varies per category so the full line is kept verbatim; Name
// and ChaosValue are best-effort extractions of the common fields.
type MarketLine struct {
	Name       string          `json:"name"`
	ChaosValue *float64        `json:"chaosValue"`
	Raw        json.RawMessage `json:"raw"`
}

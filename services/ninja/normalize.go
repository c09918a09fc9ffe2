package ninja

import (
	"time"

	"poemarket-backend/lib/textutil"
)

// candidate keys per canonical field, in the order the capture sources
// are known to use them
var (
	nameKeys  = []string{"name", "character"}
	classKeys = []string{"class", "className"}
	levelKeys = []string{"level"}
	skillKeys = []string{"skill", "mainSkill", "main_skill"}
	dpsKeys   = []string{"dps", "totalDps"}
	lifeKeys  = []string{"life", "maxLife"}
	esKeys    = []string{"energy_shield", "energyShield", "es"}
	urlKeys   = []string{"url", "poeUrl"}
)

func firstValue(raw map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys []string, fallback string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// NormalizeBuild converts a raw record, whose key names depend on the
// extraction strategy that captured it, into a canonical BuildRecord.
// Pure with respect to its input; CapturedAt is stamped with the time
// of normalization, not of the original capture.
func NormalizeBuild(raw map[string]any) BuildRecord {
	items := []any{}
	if v, ok := raw["items"].([]any); ok {
		items = v
	}

	return BuildRecord{
		Name:           firstString(raw, nameKeys, "Unknown"),
		CharacterClass: firstString(raw, classKeys, "Unknown"),
		Level:          textutil.ParseOptionalInt(firstValue(raw, levelKeys)),
		MainSkill:      firstString(raw, skillKeys, "Unknown"),
		Dps:            textutil.ParseOptionalInt(firstValue(raw, dpsKeys)),
		Life:           textutil.ParseOptionalInt(firstValue(raw, lifeKeys)),
		EnergyShield:   textutil.ParseOptionalInt(firstValue(raw, esKeys)),
		Items:          items,
		SourceUrl:      firstString(raw, urlKeys, ""),
		CapturedAt:     time.Now().UTC(),
	}
}

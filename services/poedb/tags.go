package poedb

import (
	"sort"
	"strings"
)

// tagClasses maps known tag substrings to the item classes they imply.
// Iteration order does not matter, the result is deduplicated and
// sorted.
var tagClasses = map[string][]string{
	"ring":      {"Ring"},
	"jewellery": {"Ring", "Amulet"},
	"amulet":    {"Amulet"},
	"belt":      {"Belt"},
	"body":      {"Body Armour"},
	"armour":    {"Body Armour", "Helmet", "Gloves", "Boots"},
	"helmet":    {"Helmet"},
	"helm":      {"Helmet"},
	"gloves":    {"Gloves"},
	"boots":     {"Boots"},
	"shield":    {"Shield"},
	"weapon":    {"Sword", "Axe", "Mace", "Bow", "Wand", "Dagger", "Claw", "Staff", "Sceptre"},
	"sword":     {"Sword"},
	"axe":       {"Axe"},
	"mace":      {"Mace"},
	"bow":       {"Bow"},
	"wand":      {"Wand"},
	"dagger":    {"Dagger"},
	"claw":      {"Claw"},
	"staff":     {"Staff"},
	"sceptre":   {"Sceptre"},
	"quiver":    {"Quiver"},
	"jewel":     {"Jewel"},
	"flask":     {"Flask"},
}

// ClassifyTags maps a comma separated tag string onto the item classes
// a mod can roll on. This is a best-effort substring heuristic, not an
// exact parser: a tag substring matching inside an unrelated word (say
// "belt" inside "beltway") produces a false positive. When nothing
// matches the mod is treated as universal.
func ClassifyTags(rawTagText string) []string {
	lower := strings.ToLower(rawTagText)

	seen := map[string]bool{}
	for tag, classes := range tagClasses {
		if !strings.Contains(lower, tag) {
			continue
		}
		for _, class := range classes {
			seen[class] = true
		}
	}

	if len(seen) == 0 {
		return []string{UniversalClass}
	}

	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

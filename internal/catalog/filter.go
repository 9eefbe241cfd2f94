package catalog

import (
	"fmt"
	"strings"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

// ArmorTypeFilter selects an armor family in the browsing UI.
type ArmorTypeFilter uint8

const (
	ArmorAll ArmorTypeFilter = iota
	ArmorFending
	ArmorMaiming
	ArmorStriking
	ArmorScouting
	ArmorAiming
	ArmorHealing
	ArmorCasting
	ArmorUniversal
)

var armorNames = []string{
	"All",
	"Fending",
	"Maiming",
	"Striking",
	"Scouting",
	"Aiming",
	"Healing",
	"Casting",
	"Universal",
}

// ArmorTypeFilters lists every filter value in menu order.
func ArmorTypeFilters() []ArmorTypeFilter {
	out := make([]ArmorTypeFilter, len(armorNames))
	for i := range out {
		out[i] = ArmorTypeFilter(i)
	}
	return out
}

func (f ArmorTypeFilter) String() string {
	if int(f) < len(armorNames) {
		return armorNames[f]
	}
	return fmt.Sprintf("ArmorTypeFilter(%d)", uint8(f))
}

// ParseArmorTypeFilter resolves a filter by name, ignoring case.
func ParseArmorTypeFilter(name string) (ArmorTypeFilter, error) {
	for i, n := range armorNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ArmorTypeFilter(i), nil
		}
	}
	return ArmorAll, fmt.Errorf("%w: unknown armor type %q", ErrInvalidArgument, name)
}

// ArmorType reports the armor family of an item. Job category data is not
// part of the item source, so every item is Universal.
func ArmorType(gear.Item) ArmorTypeFilter {
	return ArmorUniversal
}

// Paginate returns the page'th slice of perPage items. page is clamped into
// range and total is at least 1, so an empty list has one empty page.
func Paginate[T any](items []T, page, perPage int) (pageItems []T, current, total int) {
	if perPage <= 0 {
		perPage = len(items)
		if perPage == 0 {
			perPage = 1
		}
	}

	total = (len(items) + perPage - 1) / perPage
	if total < 1 {
		total = 1
	}

	current = min(max(page, 0), total-1)

	start := current * perPage
	end := min(start+perPage, len(items))
	if start >= len(items) {
		return nil, current, total
	}
	return items[start:end:end], current, total
}

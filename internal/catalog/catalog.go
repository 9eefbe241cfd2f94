// Package catalog indexes wearable items by slot and answers filtered
// browsing queries.
//
// A Catalog is built once from the raw item and dye sources and is
// read-only afterwards. It is not safe for concurrent construction and
// query; the host builds it before issuing any query.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

// ErrInvalidArgument is returned for queries on a slot outside the known set.
var ErrInvalidArgument = errors.New("invalid argument")

// RawItem is one row of the external item source.
type RawItem struct {
	ID         uint32
	Name       string
	IconID     uint32
	Attributes gear.AttributeSet
}

// RawDye is one row of the external dye source. ID 0 is reserved.
type RawDye struct {
	ID   uint16
	Name string
}

// Stats summarizes a catalog build.
type Stats struct {
	Kept                map[gear.Slot]int
	SkippedNoID         int
	SkippedNoIcon       int
	SkippedUnclassified int
	SkippedDuplicate    int
	DyesSkipped         int
}

// Total returns the number of items kept across all slots.
func (s Stats) Total() int {
	return lo.Sum(lo.Values(s.Kept))
}

type entry struct {
	item   gear.Item
	folded string
}

type bucket struct {
	entries []entry
	items   []gear.Item
}

type located struct {
	item gear.Item
	slot gear.Slot
}

// Catalog is the per-slot item index.
type Catalog struct {
	buckets map[gear.Slot]*bucket
	byID    map[uint32]located
	dyes    []gear.Dye
	dyeByID map[uint16]gear.Dye
	stats   Stats
}

// New builds a catalog. Items with id 0, icon 0, or no resolvable slot are
// left out; a repeated item id keeps its first occurrence. Dyes keep source
// order; id 0 and repeated ids are skipped.
func New(items []RawItem, dyes []RawDye, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{
		buckets: make(map[gear.Slot]*bucket),
		byID:    make(map[uint32]located, len(items)),
		dyeByID: make(map[uint16]gear.Dye, len(dyes)),
		stats:   Stats{Kept: make(map[gear.Slot]int)},
	}
	for _, s := range gear.Slots() {
		c.buckets[s] = &bucket{}
	}

	fold := cases.Fold()
	for _, raw := range items {
		switch {
		case raw.ID == 0:
			c.stats.SkippedNoID++
			continue
		case raw.IconID == 0:
			c.stats.SkippedNoIcon++
			continue
		}

		slot, ok := gear.Classify(raw.Attributes)
		if !ok {
			c.stats.SkippedUnclassified++
			continue
		}
		if _, dup := c.byID[raw.ID]; dup {
			c.stats.SkippedDuplicate++
			log.Debug("duplicate item id", zap.Uint32("id", raw.ID), zap.String("name", raw.Name))
			continue
		}

		it := gear.Item{ID: raw.ID, Name: raw.Name, IconID: raw.IconID}
		b := c.buckets[slot]
		b.entries = append(b.entries, entry{item: it, folded: fold.String(it.Name)})
		c.byID[it.ID] = located{item: it, slot: slot}
	}

	for slot, b := range c.buckets {
		slices.SortFunc(b.entries, func(x, y entry) int {
			if n := strings.Compare(x.folded, y.folded); n != 0 {
				return n
			}
			return cmp.Compare(x.item.ID, y.item.ID)
		})
		b.items = lo.Map(b.entries, func(e entry, _ int) gear.Item { return e.item })
		c.stats.Kept[slot] = len(b.items)
	}

	for _, d := range dyes {
		if d.ID == gear.NoDye {
			c.stats.DyesSkipped++
			log.Warn("dye source contains reserved id 0", zap.String("name", d.Name))
			continue
		}
		if _, dup := c.dyeByID[d.ID]; dup {
			c.stats.DyesSkipped++
			continue
		}
		dye := gear.Dye{ID: d.ID, Name: d.Name}
		c.dyes = append(c.dyes, dye)
		c.dyeByID[d.ID] = dye
	}

	log.Info("catalog built",
		zap.Int("items", c.stats.Total()),
		zap.Int("dyes", len(c.dyes)),
		zap.Int("skipped_no_id", c.stats.SkippedNoID),
		zap.Int("skipped_no_icon", c.stats.SkippedNoIcon),
		zap.Int("skipped_unclassified", c.stats.SkippedUnclassified),
		zap.Int("skipped_duplicate", c.stats.SkippedDuplicate),
	)

	return c
}

// Empty returns a catalog with no items or dyes.
func Empty() *Catalog {
	return New(nil, nil, nil)
}

// Query returns the items of slot, sorted by name (case-insensitive) then id.
//
// A non-blank search keeps only items whose name contains it, ignoring case.
// Sorting and search both compare Unicode case-folded names, so "ß" matches
// "SS" and "Σ" matches "σ".
// raceExclusiveOnly, applyWeaponJobFilter and armorType are accepted so
// callers can pass their UI state unconditionally; the data the catalog is
// built from carries no race, job or armor family information, so they do not
// narrow the result.
//
// The returned slice is shared with the catalog and must not be modified.
func (c *Catalog) Query(slot gear.Slot, search string, raceExclusiveOnly, applyWeaponJobFilter bool, armorType ArmorTypeFilter) ([]gear.Item, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: unknown slot %d", ErrInvalidArgument, uint8(slot))
	}

	b := c.buckets[slot]
	if strings.TrimSpace(search) == "" {
		return slices.Clip(b.items), nil
	}

	needle := cases.Fold().String(search)
	matches := lo.Filter(b.entries, func(e entry, _ int) bool {
		return strings.Contains(e.folded, needle)
	})
	return lo.Map(matches, func(e entry, _ int) gear.Item { return e.item }), nil
}

// Item looks up a cataloged item by id.
func (c *Catalog) Item(id uint32) (gear.Item, bool) {
	l, ok := c.byID[id]
	return l.item, ok
}

// SlotOf returns the slot an item was classified into.
func (c *Catalog) SlotOf(id uint32) (gear.Slot, bool) {
	l, ok := c.byID[id]
	return l.slot, ok
}

// Dyes returns the dye list in source order, without the "None" sentinel.
func (c *Catalog) Dyes() []gear.Dye {
	return slices.Clone(c.dyes)
}

// Dye looks up a dye. Id 0 always resolves to the "None" dye.
func (c *Catalog) Dye(id uint16) (gear.Dye, bool) {
	if id == gear.NoDye {
		return gear.None(), true
	}
	d, ok := c.dyeByID[id]
	return d, ok
}

// Stats returns the build summary.
func (c *Catalog) Stats() Stats {
	s := c.stats
	s.Kept = make(map[gear.Slot]int, len(c.stats.Kept))
	for k, v := range c.stats.Kept {
		s.Kept[k] = v
	}
	return s
}

package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/cases"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

func attrs(flags ...string) gear.AttributeSet {
	return gear.EquipSlotCategoryV1.MustSet(flags...)
}

func sampleItems() []RawItem {
	return []RawItem{
		{ID: 100, Name: "Robe of Wind", IconID: 5, Attributes: attrs("Body")},
		{ID: 101, Name: "Tunic", IconID: 6, Attributes: attrs("Body")},
		{ID: 102, Name: "apprentice's robe", IconID: 7, Attributes: attrs("Body")},
		{ID: 103, Name: "Tunic", IconID: 8, Attributes: attrs("Body")},
		{ID: 99, Name: "tunic", IconID: 9, Attributes: attrs("Body")},
		{ID: 200, Name: "Hat", IconID: 10, Attributes: attrs("Head")},
		{ID: 0, Name: "Ghost", IconID: 11, Attributes: attrs("Head")},
		{ID: 201, Name: "Iconless Cap", IconID: 0, Attributes: attrs("Head")},
		{ID: 300, Name: "Belt", IconID: 12, Attributes: attrs("Waist")},
		{ID: 301, Name: "Nothing", IconID: 13, Attributes: attrs()},
		{ID: 200, Name: "Hat Copy", IconID: 14, Attributes: attrs("Head")},
	}
}

func sampleDyes() []RawDye {
	return []RawDye{
		{ID: 12, Name: "Snow White"},
		{ID: 0, Name: "Reserved"},
		{ID: 3, Name: "Soot Black"},
		{ID: 12, Name: "Duplicate White"},
	}
}

// fold is the case-insensitive comparison key the catalog sorts and searches by.
func fold(s string) string {
	return cases.Fold().String(s)
}

func names(items []gear.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestNewPlacesItemsInBuckets(t *testing.T) {
	c := New(sampleItems(), sampleDyes(), nil)

	body, err := c.Query(gear.Body, "", false, false, ArmorAll)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	want := []string{"apprentice's robe", "Robe of Wind", "tunic", "Tunic", "Tunic"}
	if diff := cmp.Diff(want, names(body)); diff != "" {
		t.Errorf("body bucket mismatch (-want +got):\n%s", diff)
	}

	head, _ := c.Query(gear.Head, "", false, false, ArmorAll)
	if len(head) != 1 || head[0].ID != 200 || head[0].Name != "Hat" {
		t.Errorf("unexpected head bucket %+v", head)
	}

	slot, ok := c.SlotOf(100)
	if !ok || slot != gear.Body {
		t.Errorf("SlotOf(100) = %v/%v, want Body", slot, ok)
	}
}

func TestNewExcludesInvalidItems(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	for _, s := range gear.Slots() {
		items, err := c.Query(s, "", false, false, ArmorAll)
		if err != nil {
			t.Fatalf("Query(%v): %v", s, err)
		}
		for _, it := range items {
			if it.ID == 0 {
				t.Errorf("slot %v contains item with id 0", s)
			}
			if it.IconID == 0 {
				t.Errorf("slot %v contains item %d without icon", s, it.ID)
			}
		}
	}

	for _, id := range []uint32{0, 201, 300, 301} {
		if _, ok := c.Item(id); ok {
			t.Errorf("item %d should have been excluded", id)
		}
	}

	stats := c.Stats()
	if stats.SkippedNoID != 1 || stats.SkippedNoIcon != 1 || stats.SkippedUnclassified != 2 || stats.SkippedDuplicate != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.Total() != 6 {
		t.Errorf("expected 6 kept items, got %d", stats.Total())
	}
	if stats.Kept[gear.Body] != 5 || stats.Kept[gear.Head] != 1 {
		t.Errorf("unexpected kept counts %v", stats.Kept)
	}
}

func TestBucketSortOrder(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	for _, s := range gear.Slots() {
		items, _ := c.Query(s, "", false, false, ArmorAll)
		for i := 1; i < len(items); i++ {
			a, b := fold(items[i-1].Name), fold(items[i].Name)
			if a > b {
				t.Errorf("slot %v: %q sorted before %q", s, items[i-1].Name, items[i].Name)
			}
			if a == b && items[i-1].ID >= items[i].ID {
				t.Errorf("slot %v: equal names not ordered by id (%d, %d)", s, items[i-1].ID, items[i].ID)
			}
		}
	}
}

func TestQuerySearch(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	got, err := c.Query(gear.Body, "rob", false, false, ArmorAll)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if diff := cmp.Diff([]string{"apprentice's robe", "Robe of Wind"}, names(got)); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}

	got, _ = c.Query(gear.Body, "TUNIC", false, false, ArmorAll)
	if len(got) != 3 {
		t.Errorf("expected 3 tunics, got %v", names(got))
	}

	got, _ = c.Query(gear.Body, "   ", false, false, ArmorAll)
	if len(got) != 5 {
		t.Errorf("whitespace search should not filter, got %d items", len(got))
	}

	got, _ = c.Query(gear.Body, "zzz", false, false, ArmorAll)
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", names(got))
	}
}

func TestQuerySearchIsSubset(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	for _, search := range []string{"", "r", "o", "tun", "wind", "'", "x"} {
		for _, s := range gear.Slots() {
			all, _ := c.Query(s, "", false, false, ArmorAll)
			filtered, _ := c.Query(s, search, false, false, ArmorAll)

			var want []gear.Item
			for _, it := range all {
				if strings.Contains(fold(it.Name), fold(search)) {
					want = append(want, it)
				}
			}
			if len(want) == 0 && len(filtered) == 0 {
				continue
			}
			if diff := cmp.Diff(want, filtered); diff != "" {
				t.Errorf("slot %v search %q mismatch (-want +got):\n%s", s, search, diff)
			}
		}
	}
}

func TestQueryIgnoresExtensionFilters(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	base, _ := c.Query(gear.Body, "", false, false, ArmorAll)
	for _, f := range ArmorTypeFilters() {
		got, err := c.Query(gear.Body, "", true, true, f)
		if err != nil {
			t.Fatalf("Query with filter %v: %v", f, err)
		}
		if diff := cmp.Diff(base, got); diff != "" {
			t.Errorf("filter %v changed the result (-want +got):\n%s", f, diff)
		}
	}
}

func TestQueryUnknownSlot(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	_, err := c.Query(gear.Slot(99), "", false, false, ArmorAll)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestQueryEmptyBucket(t *testing.T) {
	c := Empty()

	got, err := c.Query(gear.Back, "", false, false, ArmorAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestQueryResultAppendDoesNotLeak(t *testing.T) {
	c := New(sampleItems(), nil, nil)

	got, _ := c.Query(gear.Body, "", false, false, ArmorAll)
	_ = append(got, gear.Item{ID: 999, Name: "Intruder"})

	again, _ := c.Query(gear.Body, "", false, false, ArmorAll)
	if len(again) != 5 {
		t.Errorf("bucket changed size to %d", len(again))
	}
}

func TestDyes(t *testing.T) {
	c := New(nil, sampleDyes(), nil)

	want := []gear.Dye{{ID: 12, Name: "Snow White"}, {ID: 3, Name: "Soot Black"}}
	if diff := cmp.Diff(want, c.Dyes()); diff != "" {
		t.Errorf("dyes mismatch (-want +got):\n%s", diff)
	}

	none, ok := c.Dye(0)
	if !ok || none != gear.None() {
		t.Errorf("Dye(0) = %v/%v, want None", none, ok)
	}
	if _, ok := c.Dye(77); ok {
		t.Error("Dye(77) should not resolve")
	}
	if c.Stats().DyesSkipped != 2 {
		t.Errorf("expected 2 skipped dyes, got %d", c.Stats().DyesSkipped)
	}
}

func TestQueryFoldsUnicodeCase(t *testing.T) {
	c := New([]RawItem{
		{ID: 400, Name: "Straße Coat", IconID: 1, Attributes: attrs("Body")},
		{ID: 401, Name: "Σοφία Robe", IconID: 2, Attributes: attrs("Body")},
		{ID: 402, Name: "Strass Vest", IconID: 3, Attributes: attrs("Body")},
	}, nil, nil)

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"Strass Vest", "Straße Coat", "Σοφία Robe"}},
		{"STRASSE", []string{"Straße Coat"}},
		{"straße", []string{"Straße Coat"}},
		{"ß", []string{"Strass Vest", "Straße Coat"}},
		{"ΣΟΦΊΑ", []string{"Σοφία Robe"}},
		{"σοφία robe", []string{"Σοφία Robe"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := c.Query(gear.Body, tt.search, false, false, ArmorAll)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("Query(%q) mismatch (-want +got):\n%s", tt.search, diff)
			}
		})
	}
}

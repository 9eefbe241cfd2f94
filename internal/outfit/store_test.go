package outfit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

func TestStoreSaveGetDelete(t *testing.T) {
	s := NewStore()
	o := New(map[gear.Slot]Piece{gear.Head: {ItemID: 100, DyeID: 5}})

	if err := s.Save("Summer", o); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, ok := s.Get("Summer")
	if !ok || !got.Equal(o) {
		t.Errorf("Get(Summer) = %v/%v", got.Pieces(), ok)
	}

	replacement := New(map[gear.Slot]Piece{gear.Feet: {ItemID: 9}})
	if err := s.Save("Summer", replacement); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got, _ := s.Get("Summer"); !got.Equal(replacement) {
		t.Error("Save did not replace the existing outfit")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	if !s.Delete("Summer") {
		t.Error("Delete(Summer) = false")
	}
	if s.Delete("Summer") {
		t.Error("second Delete(Summer) = true")
	}
	if _, ok := s.Get("Summer"); ok {
		t.Error("outfit still present after Delete")
	}
}

func TestStoreBlankName(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"", "   ", "\t"} {
		if err := s.Save(name, Outfit{}); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
	if s.Len() != 0 {
		t.Errorf("blank names were stored")
	}
}

func TestStoreListSorted(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"b", "C", "a"} {
		if err := s.Save(name, Outfit{}); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"C", "a", "b"}, s.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreExportImport(t *testing.T) {
	s := NewStore()
	o := New(map[gear.Slot]Piece{gear.Head: {ItemID: 100, DyeID: 5}, gear.Feet: {ItemID: 200}})
	if err := s.Save("x", o); err != nil {
		t.Fatal(err)
	}

	text, err := s.ExportNamed("x")
	if err != nil {
		t.Fatalf("ExportNamed error: %v", err)
	}
	if text != s.Export(o) {
		t.Errorf("ExportNamed and Export disagree")
	}
	got, err := s.Import(text)
	if err != nil || !got.Equal(o) {
		t.Errorf("Import(%s) = %v, %v", text, got.Pieces(), err)
	}
	if s.Len() != 1 {
		t.Error("Import modified the store")
	}

	if _, err := s.ExportNamed("missing"); err == nil {
		t.Error("ExportNamed(missing) should fail")
	}
}

func TestStoreEntriesReplace(t *testing.T) {
	s := NewStore()
	if err := s.Save("keep", Outfit{}); err != nil {
		t.Fatal(err)
	}

	entries := s.Entries()
	delete(entries, "keep")
	if s.Len() != 1 {
		t.Error("Entries returned the internal map")
	}

	s.Replace(map[string]Outfit{
		"one": New(map[gear.Slot]Piece{gear.Body: {ItemID: 1}}),
		" ":   {},
	})
	if diff := cmp.Diff([]string{"one"}, s.List()); diff != "" {
		t.Errorf("List() after Replace mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftClearKeepsDyes(t *testing.T) {
	d := NewDraft()
	d.Select(gear.Head, 100)
	d.SetDye(gear.Head, 5)
	d.SetDye(gear.Feet, 7)

	d.Clear()
	if d.Len() != 0 {
		t.Errorf("Clear left %d selections", d.Len())
	}
	if d.Dye(gear.Head) != 5 || d.Dye(gear.Feet) != 7 {
		t.Errorf("Clear dropped dyes: head=%d feet=%d", d.Dye(gear.Head), d.Dye(gear.Feet))
	}

	d.Select(gear.Head, 101)
	p, _ := d.Outfit().Piece(gear.Head)
	if p != (Piece{ItemID: 101, DyeID: 5}) {
		t.Errorf("reselected piece = %+v", p)
	}
}

func TestDraftOutfitAndLoad(t *testing.T) {
	d := NewDraft()
	d.Select(gear.Head, 100)
	d.SetDye(gear.Head, 5)
	d.Select(gear.Feet, 200)
	d.SetDye(gear.Legs, 9)

	want := map[gear.Slot]Piece{
		gear.Head: {ItemID: 100, DyeID: 5},
		gear.Feet: {ItemID: 200},
	}
	if diff := cmp.Diff(want, d.Outfit().Pieces()); diff != "" {
		t.Errorf("Outfit() mismatch (-want +got):\n%s", diff)
	}

	d.Deselect(gear.Feet)
	if _, ok := d.Selected(gear.Feet); ok {
		t.Error("Deselect left the slot selected")
	}

	d.Load(New(map[gear.Slot]Piece{gear.Body: {ItemID: 50, DyeID: 2}}))
	if _, ok := d.Selected(gear.Head); ok {
		t.Error("Load kept an old selection")
	}
	if id, ok := d.Selected(gear.Body); !ok || id != 50 {
		t.Errorf("Selected(Body) = %d/%v", id, ok)
	}
	if d.Dye(gear.Body) != 2 {
		t.Errorf("Dye(Body) = %d, want 2", d.Dye(gear.Body))
	}
	if d.Dye(gear.Legs) != 9 {
		t.Error("Load dropped an unrelated dye choice")
	}
}

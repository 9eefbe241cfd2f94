package outfit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

func TestOutfitIsImmutable(t *testing.T) {
	base := New(map[gear.Slot]Piece{gear.Head: {ItemID: 100, DyeID: 5}})

	added := base.With(gear.Feet, Piece{ItemID: 200})
	if base.Len() != 1 {
		t.Errorf("With modified the receiver: %d pieces", base.Len())
	}
	if added.Len() != 2 {
		t.Errorf("With result has %d pieces, want 2", added.Len())
	}

	removed := added.Without(gear.Head)
	if _, ok := added.Piece(gear.Head); !ok {
		t.Error("Without modified the receiver")
	}
	if _, ok := removed.Piece(gear.Head); ok {
		t.Error("Without left the slot assigned")
	}

	pieces := base.Pieces()
	pieces[gear.Body] = Piece{ItemID: 1}
	if base.Len() != 1 {
		t.Error("Pieces returned the internal map")
	}
}

func TestZeroOutfit(t *testing.T) {
	var o Outfit
	if o.Len() != 0 || len(o.Slots()) != 0 {
		t.Errorf("zero outfit not empty")
	}
	o2 := o.With(gear.Neck, Piece{ItemID: 7})
	if p, ok := o2.Piece(gear.Neck); !ok || p.ItemID != 7 {
		t.Errorf("With on zero outfit: %+v/%v", p, ok)
	}
	if !o.Equal(Outfit{}) {
		t.Error("zero outfits should be equal")
	}
}

func TestInvalidSlotIgnored(t *testing.T) {
	o := New(map[gear.Slot]Piece{gear.Slot(200): {ItemID: 1}})
	if o.Len() != 0 {
		t.Errorf("New kept an unknown slot")
	}
	if o.With(gear.Slot(99), Piece{ItemID: 1}).Len() != 0 {
		t.Errorf("With accepted an unknown slot")
	}
}

func TestSlotsCanonicalOrder(t *testing.T) {
	o := New(map[gear.Slot]Piece{
		gear.RingRight: {ItemID: 1},
		gear.Head:      {ItemID: 2},
		gear.Feet:      {ItemID: 3},
	})
	want := []gear.Slot{gear.Head, gear.Feet, gear.RingRight}
	if diff := cmp.Diff(want, o.Slots()); diff != "" {
		t.Errorf("Slots() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportFormat(t *testing.T) {
	o := New(map[gear.Slot]Piece{
		gear.Feet: {ItemID: 200},
		gear.Head: {ItemID: 100, DyeID: 5},
	})
	want := `{"Version":1,"Pieces":{"Head":{"ItemId":100,"StainId":5},"Feet":{"ItemId":200,"StainId":0}}}`
	if got := Export(o); got != want {
		t.Errorf("Export() = %s\nwant %s", got, want)
	}
	if got := Export(Outfit{}); got != `{"Version":1,"Pieces":{}}` {
		t.Errorf("Export(empty) = %s", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	outfits := []Outfit{
		{},
		New(map[gear.Slot]Piece{gear.Head: {ItemID: 100, DyeID: 5}, gear.Feet: {ItemID: 200}}),
		New(map[gear.Slot]Piece{
			gear.MainHand: {ItemID: 4294967295, DyeID: 65535},
			gear.Back:     {ItemID: 1},
			gear.Wrist:    {ItemID: 2, DyeID: 3},
		}),
	}

	for _, o := range outfits {
		text := Export(o)
		got, err := Import(text)
		if err != nil {
			t.Fatalf("Import(%s) error: %v", text, err)
		}
		if !got.Equal(o) {
			t.Errorf("round trip mismatch for %s: %v", text, got.Pieces())
		}
		if Export(got) != text {
			t.Errorf("re-export differs: %s vs %s", Export(got), text)
		}
	}
}

func TestImportLenient(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[gear.Slot]Piece
	}{
		{
			name: "lowercase fields and slot",
			text: `{"pieces":{"head":{"itemid":1,"stainid":2}}}`,
			want: map[gear.Slot]Piece{gear.Head: {ItemID: 1, DyeID: 2}},
		},
		{
			name: "unknown fields ignored",
			text: `{"Version":1,"Owner":"x","Pieces":{"Body":{"ItemId":3,"Glam":true}}}`,
			want: map[gear.Slot]Piece{gear.Body: {ItemID: 3}},
		},
		{
			name: "surrounding whitespace",
			text: "  \n{\"Pieces\":{}}\n",
			want: map[gear.Slot]Piece{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Import(tt.text)
			if err != nil {
				t.Fatalf("Import error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.Pieces()); diff != "" {
				t.Errorf("pieces mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not json", "hello"},
		{"null", "null"},
		{"array", "[]"},
		{"missing pieces", `{"Version":1}`},
		{"null pieces", `{"Pieces":null}`},
		{"unknown slot", `{"Pieces":{"Tail":{"ItemId":1}}}`},
		{"null piece", `{"Pieces":{"Head":null}}`},
		{"negative item", `{"Pieces":{"Head":{"ItemId":-1}}}`},
		{"dye overflow", `{"Pieces":{"Head":{"ItemId":1,"StainId":70000}}}`},
		{"duplicate slot", `{"Pieces":{"Head":{"ItemId":1},"head":{"ItemId":2}}}`},
		{"truncated", `{"Pieces":{"Head":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.text)
			if !errors.Is(err, ErrDeserialization) {
				t.Errorf("Import(%q) error = %v, want ErrDeserialization", tt.text, err)
			}
		})
	}
}

package outfit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

// ErrDeserialization is returned by Import for malformed share text.
var ErrDeserialization = errors.New("malformed outfit text")

// FormatVersion is written into exported text.
const FormatVersion = 1

// wirePiece field names match the share format used by earlier releases.
type wirePiece struct {
	ItemID  uint32 `json:"ItemId"`
	StainID uint16 `json:"StainId"`
}

type wireOutfit struct {
	Version int                   `json:"Version"`
	Pieces  map[string]*wirePiece `json:"Pieces"`
}

// Export renders o as share text: a JSON object with pieces keyed by slot
// name in canonical slot order, so equal outfits export identically.
func Export(o Outfit) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"Version":%d,"Pieces":{`, FormatVersion)
	for i, s := range o.Slots() {
		if i > 0 {
			buf.WriteByte(',')
		}
		p := o.pieces[s]
		piece, _ := json.Marshal(wirePiece{ItemID: p.ItemID, StainID: p.DyeID})
		fmt.Fprintf(&buf, "%q:%s", s.String(), piece)
	}
	buf.WriteString("}}")
	return buf.String()
}

// Import parses share text produced by Export. Field names match
// case-insensitively and unknown fields are ignored. Text that is not an
// object, lacks Pieces, names an unknown slot, or repeats a slot fails with
// ErrDeserialization.
func Import(text string) (Outfit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outfit{}, fmt.Errorf("%w: empty text", ErrDeserialization)
	}

	var doc wireOutfit
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return Outfit{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if doc.Pieces == nil {
		return Outfit{}, fmt.Errorf("%w: missing Pieces", ErrDeserialization)
	}

	pieces := make(map[gear.Slot]Piece, len(doc.Pieces))
	for key, wp := range doc.Pieces {
		slot, err := gear.ParseSlot(key)
		if err != nil {
			return Outfit{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
		}
		if wp == nil {
			return Outfit{}, fmt.Errorf("%w: slot %s has no piece", ErrDeserialization, slot)
		}
		if _, dup := pieces[slot]; dup {
			return Outfit{}, fmt.Errorf("%w: slot %s given twice", ErrDeserialization, slot)
		}
		pieces[slot] = Piece{ItemID: wp.ItemID, DyeID: wp.StainID}
	}

	return Outfit{pieces: pieces}, nil
}

// Package outfit holds saved slot assignments: the immutable Outfit value,
// the mutable Draft the browsing UI edits, and the named Store.
package outfit

import (
	"maps"

	"github.com/samber/lo"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

// Piece is the item and dye assigned to one slot. DyeID 0 means undyed.
type Piece struct {
	ItemID uint32
	DyeID  uint16
}

// Outfit maps slots to pieces, at most one piece per slot. The zero value is
// an empty outfit. Outfits are values: With and Without return a new Outfit
// and never modify the receiver.
type Outfit struct {
	pieces map[gear.Slot]Piece
}

// New builds an outfit from a slot mapping. Unknown slots are dropped.
func New(pieces map[gear.Slot]Piece) Outfit {
	o := Outfit{pieces: make(map[gear.Slot]Piece, len(pieces))}
	for s, p := range pieces {
		if s.Valid() {
			o.pieces[s] = p
		}
	}
	return o
}

// With returns a copy of o with slot set to p. An unknown slot returns o as is.
func (o Outfit) With(slot gear.Slot, p Piece) Outfit {
	if !slot.Valid() {
		return o
	}
	next := Outfit{pieces: maps.Clone(o.pieces)}
	if next.pieces == nil {
		next.pieces = make(map[gear.Slot]Piece, 1)
	}
	next.pieces[slot] = p
	return next
}

// Without returns a copy of o with slot cleared.
func (o Outfit) Without(slot gear.Slot) Outfit {
	if _, ok := o.pieces[slot]; !ok {
		return o
	}
	next := Outfit{pieces: maps.Clone(o.pieces)}
	delete(next.pieces, slot)
	return next
}

// Piece returns the piece assigned to slot.
func (o Outfit) Piece(slot gear.Slot) (Piece, bool) {
	p, ok := o.pieces[slot]
	return p, ok
}

// Len returns the number of assigned slots.
func (o Outfit) Len() int {
	return len(o.pieces)
}

// Slots returns the assigned slots in canonical slot order.
func (o Outfit) Slots() []gear.Slot {
	return lo.Filter(gear.Slots(), func(s gear.Slot, _ int) bool {
		_, ok := o.pieces[s]
		return ok
	})
}

// Pieces returns a copy of the slot mapping.
func (o Outfit) Pieces() map[gear.Slot]Piece {
	out := make(map[gear.Slot]Piece, len(o.pieces))
	maps.Copy(out, o.pieces)
	return out
}

// Equal reports whether both outfits assign the same pieces to the same slots.
func (o Outfit) Equal(other Outfit) bool {
	return maps.Equal(o.pieces, other.pieces)
}

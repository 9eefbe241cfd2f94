package outfit

import "github.com/Faultbox/crystarium-boutique/internal/gear"

// Draft is the selection being edited in the browsing UI: one selected item
// per slot plus a dye choice per slot. Dye choices outlive item selections,
// so clearing the selections keeps the dyes picked for each slot.
type Draft struct {
	items map[gear.Slot]uint32
	dyes  map[gear.Slot]uint16
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{
		items: make(map[gear.Slot]uint32),
		dyes:  make(map[gear.Slot]uint16),
	}
}

// Select records itemID as the selection for slot.
func (d *Draft) Select(slot gear.Slot, itemID uint32) {
	d.items[slot] = itemID
}

// Deselect clears the selection for slot.
func (d *Draft) Deselect(slot gear.Slot) {
	delete(d.items, slot)
}

// Selected returns the item selected for slot.
func (d *Draft) Selected(slot gear.Slot) (uint32, bool) {
	id, ok := d.items[slot]
	return id, ok
}

// SetDye records the dye choice for slot.
func (d *Draft) SetDye(slot gear.Slot, dyeID uint16) {
	d.dyes[slot] = dyeID
}

// Dye returns the dye chosen for slot, or gear.NoDye.
func (d *Draft) Dye(slot gear.Slot) uint16 {
	return d.dyes[slot]
}

// Clear drops every item selection.
func (d *Draft) Clear() {
	clear(d.items)
}

// Len returns the number of selected slots.
func (d *Draft) Len() int {
	return len(d.items)
}

// Outfit snapshots the selected items with their slot dyes.
func (d *Draft) Outfit() Outfit {
	pieces := make(map[gear.Slot]Piece, len(d.items))
	for s, id := range d.items {
		pieces[s] = Piece{ItemID: id, DyeID: d.dyes[s]}
	}
	return New(pieces)
}

// Load replaces the item selections with o and takes over its dyes.
func (d *Draft) Load(o Outfit) {
	clear(d.items)
	for s, p := range o.pieces {
		d.items[s] = p.ItemID
		d.dyes[s] = p.DyeID
	}
}

package gear

import "fmt"

// Item is a catalog entry. Items are immutable once the catalog is built.
type Item struct {
	ID     uint32
	Name   string
	IconID uint32 // 0 = no icon
}

// Label returns the item name, or a placeholder built from the id when the
// name is unknown.
func (i Item) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return fmt.Sprintf("item #%d", i.ID)
}

// NoDye is the dye id meaning "undyed". It is valid regardless of the dye list.
const NoDye uint16 = 0

// Dye is a cosmetic tint.
type Dye struct {
	ID   uint16
	Name string
}

// None returns the sentinel dye entry.
func None() Dye {
	return Dye{ID: NoDye, Name: "None"}
}

// DyeLabel describes a dye id the way diagnostics print it.
func DyeLabel(id uint16) string {
	if id == NoDye {
		return "(no dye)"
	}
	return fmt.Sprintf("dye #%d", id)
}

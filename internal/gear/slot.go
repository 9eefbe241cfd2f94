// Package gear defines the equipment vocabulary shared by the boutique:
// wearable slots, catalog items, dyes, and the slot classifier that maps
// raw equip-slot flags onto a slot.
package gear

import (
	"fmt"
	"strings"
)

// Slot is a wearable position an item can occupy.
type Slot uint8

const (
	Head Slot = iota
	Body
	Hands
	Legs
	Feet
	MainHand
	OffHand
	Back // reserved; no classifier rule produces it
	Ears
	Neck
	Wrist
	RingLeft
	RingRight

	slotCount
)

var slotNames = [slotCount]string{
	"Head",
	"Body",
	"Hands",
	"Legs",
	"Feet",
	"MainHand",
	"OffHand",
	"Back",
	"Ears",
	"Neck",
	"Wrist",
	"RingLeft",
	"RingRight",
}

// Slots returns every slot in canonical order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// TabSlots returns the slots in the order the browsing UI presents them.
// Back has no catalog items and is left out.
func TabSlots() []Slot {
	return []Slot{
		Head, Body, Hands, Legs, Feet,
		MainHand, OffHand,
		Ears, Neck, Wrist, RingLeft, RingRight,
	}
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	return s < slotCount
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
	return slotNames[s]
}

// ParseSlot resolves a slot by name, ignoring case.
func ParseSlot(name string) (Slot, error) {
	name = strings.TrimSpace(name)
	for i, n := range slotNames {
		if strings.EqualFold(n, name) {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", name)
}

// MarshalText encodes the slot by name so it can be used as a map key.
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown slot %d", uint8(s))
	}
	return []byte(slotNames[s]), nil
}

// UnmarshalText decodes a slot name.
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

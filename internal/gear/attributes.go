package gear

import (
	"fmt"
	"strings"
)

// Flag is one named equip-slot eligibility flag of an item.
type Flag struct {
	Name   string
	Active bool
}

// AttributeSet is the ordered list of flags the item source exposes for one
// item. Order matters: the classifier scans flags front to back.
type AttributeSet []Flag

// Active returns the names of the active flags in source order.
func (a AttributeSet) Active() []string {
	var names []string
	for _, f := range a {
		if f.Active {
			names = append(names, f.Name)
		}
	}
	return names
}

// Schema is a versioned, ordered list of flag names an item source exposes.
type Schema struct {
	Version int
	Names   []string
}

// EquipSlotCategoryV1 is the equip-slot flag layout of the game data sheets.
// Its glove flag is named "Gloves", which no classifier rule matches, so
// sheets using this schema never fill the Hands slot. Sheets that need Hands
// declare their own flags with a "Hands" entry.
var EquipSlotCategoryV1 = Schema{
	Version: 1,
	Names: []string{
		"MainHand",
		"OffHand",
		"Head",
		"Body",
		"Gloves",
		"Waist",
		"Legs",
		"Feet",
		"Ears",
		"Neck",
		"Wrists",
		"FingerL",
		"FingerR",
		"SoulCrystal",
	},
}

// Set builds an AttributeSet in schema order with the named flags active.
// Names are matched case-insensitively; an unknown name is an error.
func (s Schema) Set(active ...string) (AttributeSet, error) {
	set := make(AttributeSet, len(s.Names))
	for i, n := range s.Names {
		set[i] = Flag{Name: n}
	}

	for _, name := range active {
		idx := s.index(name)
		if idx < 0 {
			return nil, fmt.Errorf("unknown flag %q (schema v%d)", name, s.Version)
		}
		set[idx].Active = true
	}
	return set, nil
}

// MustSet is like Set but panics on an unknown name. Intended for literals.
func (s Schema) MustSet(active ...string) AttributeSet {
	set, err := s.Set(active...)
	if err != nil {
		panic(err)
	}
	return set
}

func (s Schema) index(name string) int {
	name = strings.TrimSpace(name)
	for i, n := range s.Names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

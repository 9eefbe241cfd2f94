package gear

import "strings"

// rule maps a lower-cased flag name onto a slot.
type rule struct {
	slot  Slot
	match func(name string) bool
}

func containsAny(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{MainHand, func(n string) bool { return strings.Contains(n, "mainhand") || n == "main" }},
	{OffHand, containsAny("offhand")},
	{Head, containsAny("head")},
	{Body, containsAny("body")},
	{Hands, func(n string) bool { return strings.Contains(n, "hand") && !strings.Contains(n, "off") }},
	{Legs, containsAny("leg")},
	{Feet, containsAny("feet", "foot", "shoe")},
	{Ears, containsAny("ear")},
	{Neck, containsAny("neck")},
	{Wrist, containsAny("wrist")},
	{RingLeft, containsAny("fingerl", "ringl")},
	{RingRight, containsAny("fingerr", "ringr")},
}

// Classify returns the slot for an item's equip-slot flags.
//
// Active flags are visited in source order and each is tested against the
// rule table; the first flag that matches any rule decides the slot. An item
// with several active flags therefore lands in the slot of whichever matching
// flag comes first, not the most specific one. ok is false when no active
// flag matches, meaning the item is not wearable.
func Classify(attrs AttributeSet) (slot Slot, ok bool) {
	for _, f := range attrs {
		if !f.Active {
			continue
		}
		name := strings.ToLower(f.Name)
		for _, r := range rules {
			if r.match(name) {
				return r.slot, true
			}
		}
	}
	return 0, false
}

// Package preview shows items on the game's try-on surface.
//
// The try-on surface is reached through a privileged integration that may
// not be available. New probes the integration once: when both entry points
// resolve, the returned Bridge drives the real surface; otherwise it falls
// back to printing what would have been previewed. The choice is fixed for
// the lifetime of the Bridge.
package preview

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/crystarium-boutique/internal/chat"
	"github.com/Faultbox/crystarium-boutique/internal/gear"
	"github.com/Faultbox/crystarium-boutique/internal/outfit"
)

// Entry point names looked up on the integration.
const (
	EntryOpen    = "tryon.open"
	EntryPreview = "tryon.preview"
)

// OpenFunc brings the try-on surface to the front.
type OpenFunc func() error

// PreviewFunc shows an item tinted with a dye on the try-on surface.
type PreviewFunc func(itemID uint32, dyeID uint16) error

// Integration resolves named entry points. Resolved values must be an
// OpenFunc / PreviewFunc or a plain func with the same signature.
type Integration interface {
	Resolve(name string) (any, bool)
}

// Symbols is an Integration backed by a fixed table.
type Symbols map[string]any

// Resolve returns the entry registered under name.
func (s Symbols) Resolve(name string) (any, bool) {
	v, ok := s[name]
	return v, ok
}

// ItemLookup finds item names for pieces that carry only an id.
type ItemLookup interface {
	Item(id uint32) (gear.Item, bool)
}

// State is the strategy a Bridge settled on at construction.
type State uint8

const (
	Fallback State = iota
	Bound
)

func (s State) String() string {
	if s == Bound {
		return "bound"
	}
	return "fallback"
}

// Bridge previews items whether or not the integration is available.
// No method panics or returns an error; failures are reported through chat.
type Bridge interface {
	State() State
	// Status is the one-line diagnostic describing State.
	Status() string
	EnsureOpen()
	Preview(item gear.Item, dyeID uint16)
	// ApplyOutfit previews every piece in canonical slot order.
	ApplyOutfit(o outfit.Outfit)
}

// New probes integration and returns the matching Bridge. A nil
// integration, a missing entry point or one with the wrong shape selects the
// fallback. items may be nil.
func New(integration Integration, items ItemLookup, out chat.Chat, log *zap.Logger) Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = chat.Discard
	}
	shared := base{items: items, chat: out, log: log}

	if integration == nil {
		log.Info("try-on integration not configured, using fallback")
		return &fallbackBridge{base: shared, reason: "no integration configured"}
	}

	open, previewFn, err := probe(integration)
	if err != nil {
		log.Warn("try-on integration unresolved, using fallback", zap.Error(err))
		out.PrintError("TryOn signatures not fully resolved; fallback will be used.")
		return &fallbackBridge{base: shared, reason: err.Error()}
	}

	log.Info("try-on integration resolved")
	return &boundBridge{base: shared, open: open, preview: previewFn}
}

func probe(integration Integration) (open OpenFunc, previewFn PreviewFunc, err error) {
	defer func() {
		if r := recover(); r != nil {
			open, previewFn = nil, nil
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()

	v, ok := integration.Resolve(EntryOpen)
	if !ok {
		return nil, nil, fmt.Errorf("%s not resolved", EntryOpen)
	}
	switch fn := v.(type) {
	case OpenFunc:
		open = fn
	case func() error:
		open = fn
	}
	if open == nil {
		return nil, nil, fmt.Errorf("%s has type %T", EntryOpen, v)
	}

	v, ok = integration.Resolve(EntryPreview)
	if !ok {
		return nil, nil, fmt.Errorf("%s not resolved", EntryPreview)
	}
	switch fn := v.(type) {
	case PreviewFunc:
		previewFn = fn
	case func(uint32, uint16) error:
		previewFn = fn
	}
	if previewFn == nil {
		return nil, nil, fmt.Errorf("%s has type %T", EntryPreview, v)
	}

	return open, previewFn, nil
}

type base struct {
	items ItemLookup
	chat  chat.Chat
	log   *zap.Logger
}

func (b base) item(id uint32) gear.Item {
	if b.items != nil {
		if it, ok := b.items.Item(id); ok {
			return it
		}
	}
	return gear.Item{ID: id}
}

func (b base) applyOutfit(o outfit.Outfit, preview func(gear.Item, uint16)) {
	for _, slot := range o.Slots() {
		p, _ := o.Piece(slot)
		preview(b.item(p.ItemID), p.DyeID)
	}
}

type boundBridge struct {
	base
	open    OpenFunc
	preview PreviewFunc
}

func (b *boundBridge) State() State { return Bound }

func (b *boundBridge) Status() string { return "TryOn status: ENABLED" }

func (b *boundBridge) EnsureOpen() {
	if err := call(func() error { return b.open() }); err != nil {
		b.log.Warn("try-on open failed", zap.Error(err))
		b.chat.PrintError("TryOn open failed: " + err.Error())
	}
}

func (b *boundBridge) Preview(item gear.Item, dyeID uint16) {
	b.EnsureOpen()
	if err := call(func() error { return b.preview(item.ID, dyeID) }); err != nil {
		b.log.Warn("try-on preview failed",
			zap.Uint32("item", item.ID),
			zap.Uint16("dye", dyeID),
			zap.Error(err))
		b.chat.PrintError("TryOn preview failed: " + err.Error())
	}
}

func (b *boundBridge) ApplyOutfit(o outfit.Outfit) {
	b.applyOutfit(o, b.Preview)
}

type fallbackBridge struct {
	base
	reason string
}

func (b *fallbackBridge) State() State { return Fallback }

func (b *fallbackBridge) Status() string {
	return "TryOn status: DISABLED (" + b.reason + ")"
}

func (b *fallbackBridge) EnsureOpen() {}

func (b *fallbackBridge) Preview(item gear.Item, dyeID uint16) {
	b.chat.Print(fmt.Sprintf("Try On (stub): %s %s", item.Label(), gear.DyeLabel(dyeID)))
}

func (b *fallbackBridge) ApplyOutfit(o outfit.Outfit) {
	b.applyOutfit(o, b.Preview)
}

// call runs fn and turns a panic into an error.
func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// Package boutique wires the catalog, icon cache, outfit store and preview
// bridge together the way the game host runs them, and exposes the actions
// the browsing window performs.
//
// Construction never fails: a dependency that cannot be built is logged and
// replaced with an empty or fallback stand-in.
package boutique

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/crystarium-boutique/internal/catalog"
	"github.com/Faultbox/crystarium-boutique/internal/chat"
	"github.com/Faultbox/crystarium-boutique/internal/config"
	"github.com/Faultbox/crystarium-boutique/internal/gear"
	"github.com/Faultbox/crystarium-boutique/internal/icons"
	"github.com/Faultbox/crystarium-boutique/internal/itemsource"
	"github.com/Faultbox/crystarium-boutique/internal/outfit"
	"github.com/Faultbox/crystarium-boutique/internal/persist"
	"github.com/Faultbox/crystarium-boutique/internal/preview"
	"github.com/Faultbox/crystarium-boutique/internal/resource"
)

// Errors returned by the selection actions.
var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownDye    = errors.New("unknown dye")
	ErrUnknownOutfit = errors.New("unknown outfit")

	// ErrStorageReadOnly is returned by actions that would write saved
	// outfits after they failed to load.
	ErrStorageReadOnly = errors.New("outfit storage is read-only")
)

// Deps overrides collaborators that would otherwise be built from config.
// Every field is optional.
type Deps struct {
	Log  *zap.Logger
	Chat chat.Chat

	// Source replaces loading the items sheet at cfg.Data.ItemsPath.
	Source *itemsource.Source
	// Icons replaces the directory provider at cfg.Data.IconRoot.
	Icons resource.Provider
	// Backend replaces the storage backend selected by cfg.Storage.
	Backend persist.Backend
	// Integration replaces the integration named by cfg.Preview.Integration.
	Integration preview.Integration
	// PreviewOut receives the echo integration's output. Defaults to stdout.
	PreviewOut io.Writer
}

// Boutique is one running session.
type Boutique struct {
	cfg  *config.Config
	log  *zap.Logger
	chat chat.Chat

	catalog *catalog.Catalog
	icons   *icons.Cache
	store   *outfit.Store
	draft   *outfit.Draft
	bridge  preview.Bridge
	backend persist.Backend
	// loadErr is set when saved outfits failed to load. Writes are then
	// refused so the stored outfits are not replaced by this session's.
	loadErr error

	open bool
}

// New builds a session from cfg. A nil cfg uses config.Default().
func New(ctx context.Context, cfg *config.Config, deps Deps) *Boutique {
	if cfg == nil {
		cfg = config.Default()
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := deps.Chat
	if out == nil {
		out = chat.Discard
	}

	b := &Boutique{
		cfg:   cfg,
		log:   log,
		chat:  out,
		store: outfit.NewStore(),
		draft: outfit.NewDraft(),
		open:  cfg.UI.OpenOnLogin,
	}

	b.catalog = b.buildCatalog(deps.Source)
	b.icons = icons.New(b.iconProvider(deps.Icons), log.Named("icons"))
	b.backend = b.openBackend(deps.Backend)
	b.loadOutfits(ctx)
	b.bridge = preview.New(b.integration(deps), b.catalog, out, log.Named("preview"))

	if cfg.Preview.PrintStatusOnStart {
		out.Print(b.bridge.Status())
	}
	log.Info("boutique initialized",
		zap.Int("items", b.catalog.Stats().Total()),
		zap.Int("outfits", b.store.Len()),
		zap.Stringer("preview", b.bridge.State()))
	return b
}

func (b *Boutique) buildCatalog(src *itemsource.Source) *catalog.Catalog {
	if src == nil {
		loaded, err := itemsource.Load(b.cfg.Data.ItemsPath, b.cfg.Data.SheetEncoding)
		if err != nil {
			b.log.Error("failed to load items sheet, catalog is empty",
				zap.String("path", b.cfg.Data.ItemsPath),
				zap.Error(err))
			b.chat.PrintError("Item data unavailable: " + err.Error())
			return catalog.Empty()
		}
		src = loaded
	}
	return catalog.New(src.Items, src.Dyes, b.log.Named("catalog"))
}

func (b *Boutique) iconProvider(p resource.Provider) resource.Provider {
	if p != nil {
		return p
	}
	if b.cfg.Data.IconRoot == "" {
		return nil
	}
	dir, err := resource.OpenDir(b.cfg.Data.IconRoot)
	if err != nil {
		b.log.Warn("icon directory unavailable", zap.String("root", b.cfg.Data.IconRoot), zap.Error(err))
		return nil
	}
	return dir
}

func (b *Boutique) openBackend(backend persist.Backend) persist.Backend {
	if backend != nil {
		return backend
	}
	path := b.cfg.StoragePath()
	backend, err := persist.Open(b.cfg.Storage.Driver, path)
	if err != nil {
		b.log.Error("outfit storage unavailable, outfits will not be kept",
			zap.String("driver", b.cfg.Storage.Driver),
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	return backend
}

func (b *Boutique) loadOutfits(ctx context.Context) {
	if b.backend == nil {
		return
	}
	entries, err := b.backend.Load(ctx)
	if err != nil {
		b.loadErr = err
		b.log.Error("failed to load saved outfits, storage is read-only", zap.Error(err))
		b.chat.PrintError("Saved outfits unavailable: " + err.Error())
		return
	}
	b.store.Replace(entries)
	b.log.Info("outfits loaded", zap.Int("count", b.store.Len()))
}

func (b *Boutique) integration(deps Deps) preview.Integration {
	if deps.Integration != nil {
		return deps.Integration
	}
	w := deps.PreviewOut
	if w == nil {
		w = os.Stdout
	}
	integration, err := preview.Named(b.cfg.Preview.Integration, w)
	if err != nil {
		b.log.Warn("preview integration unavailable", zap.Error(err))
		return nil
	}
	return integration
}

// Catalog returns the item catalog.
func (b *Boutique) Catalog() *catalog.Catalog { return b.catalog }

// Icons returns the icon cache.
func (b *Boutique) Icons() *icons.Cache { return b.icons }

// Store returns the saved outfits.
func (b *Boutique) Store() *outfit.Store { return b.store }

// Draft returns the outfit being edited.
func (b *Boutique) Draft() *outfit.Draft { return b.draft }

// Bridge returns the preview bridge.
func (b *Boutique) Bridge() preview.Bridge { return b.bridge }

// IsOpen reports whether the browsing window is shown.
func (b *Boutique) IsOpen() bool { return b.open }

// Toggle shows or hides the browsing window and returns the new state.
func (b *Boutique) Toggle() bool {
	b.open = !b.open
	return b.open
}

// Page is one page of a slot listing.
type Page struct {
	Items []gear.Item
	Page  int
	Pages int
	Total int
}

// Browse lists the items for slot matching search, paged by the configured
// page size. page is 1-based and clamped to the available range.
func (b *Boutique) Browse(slot gear.Slot, search string, page int) (Page, error) {
	items, err := b.catalog.Query(slot, search, false, false, catalog.ArmorAll)
	if err != nil {
		return Page{}, err
	}
	pageItems, current, pages := catalog.Paginate(items, page-1, b.cfg.UI.ItemsPerPage)
	return Page{Items: pageItems, Page: current + 1, Pages: pages, Total: len(items)}, nil
}

// Select makes itemID the draft's pick for slot and previews it with the
// slot's dye.
func (b *Boutique) Select(slot gear.Slot, itemID uint32) error {
	item, ok := b.catalog.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	if itemSlot, _ := b.catalog.SlotOf(itemID); itemSlot != slot {
		return fmt.Errorf("%w: %d is not a %s item", ErrUnknownItem, itemID, slot)
	}
	b.draft.Select(slot, itemID)
	b.bridge.Preview(item, b.draft.Dye(slot))
	return nil
}

// SetDye sets the dye for slot and re-previews the slot's item, if any.
func (b *Boutique) SetDye(slot gear.Slot, dyeID uint16) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: slot %d", catalog.ErrInvalidArgument, slot)
	}
	if _, ok := b.catalog.Dye(dyeID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDye, dyeID)
	}
	b.draft.SetDye(slot, dyeID)
	if itemID, ok := b.draft.Selected(slot); ok {
		item, _ := b.catalog.Item(itemID)
		if item.ID == 0 {
			item = gear.Item{ID: itemID}
		}
		b.bridge.Preview(item, dyeID)
	}
	return nil
}

// ClearSelections drops every draft selection. Dye choices are kept.
func (b *Boutique) ClearSelections() {
	b.draft.Clear()
}

// ApplyDraft previews every piece of the draft.
func (b *Boutique) ApplyDraft() {
	b.bridge.ApplyOutfit(b.draft.Outfit())
}

// ApplyOutfit previews the outfit saved under name.
func (b *Boutique) ApplyOutfit(name string) error {
	o, ok := b.store.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOutfit, name)
	}
	b.bridge.ApplyOutfit(o)
	return nil
}

// SaveDraft stores the draft under name and writes the store through.
// If saved outfits failed to load, the outfit is kept for this session only
// and ErrStorageReadOnly is returned.
func (b *Boutique) SaveDraft(ctx context.Context, name string) error {
	if err := b.store.Save(name, b.draft.Outfit()); err != nil {
		return err
	}
	return b.persist(ctx)
}

// DeleteOutfit removes name. It reports whether the outfit existed.
func (b *Boutique) DeleteOutfit(ctx context.Context, name string) (bool, error) {
	if !b.store.Delete(name) {
		return false, nil
	}
	return true, b.persist(ctx)
}

// LoadOutfit replaces the draft with the outfit saved under name.
func (b *Boutique) LoadOutfit(name string) error {
	o, ok := b.store.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOutfit, name)
	}
	b.draft.Load(o)
	return nil
}

// Share returns the share text for the outfit saved under name.
func (b *Boutique) Share(name string) (string, error) {
	text, err := b.store.ExportNamed(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownOutfit, name)
	}
	b.chat.Print("Outfit JSON copied to clipboard.")
	return text, nil
}

// LoadShared replaces the draft with the outfit in text. On failure the
// draft is left untouched.
func (b *Boutique) LoadShared(text string) error {
	o, err := b.store.Import(text)
	if err != nil {
		b.log.Warn("share text rejected", zap.Error(err))
		b.chat.PrintError("Failed to load outfit JSON: " + err.Error())
		return err
	}
	b.draft.Load(o)
	b.chat.Print("Outfit loaded from JSON.")
	return nil
}

// ImportShared saves the outfit in text under name without touching the draft.
func (b *Boutique) ImportShared(ctx context.Context, name, text string) error {
	o, err := b.store.Import(text)
	if err != nil {
		b.chat.PrintError("Failed to load outfit JSON: " + err.Error())
		return err
	}
	if err := b.store.Save(name, o); err != nil {
		return err
	}
	return b.persist(ctx)
}

func (b *Boutique) persist(ctx context.Context) error {
	if b.backend == nil {
		return nil
	}
	if b.loadErr != nil {
		return fmt.Errorf("%w: saved outfits failed to load: %v", ErrStorageReadOnly, b.loadErr)
	}
	if err := b.backend.Save(ctx, b.store.Entries()); err != nil {
		b.log.Error("failed to save outfits", zap.Error(err))
		return fmt.Errorf("save outfits: %w", err)
	}
	b.log.Debug("outfits saved", zap.Int("count", b.store.Len()))
	return nil
}

// Diagnostics returns the lines the diagnostics command prints.
func (b *Boutique) Diagnostics() []string {
	stats := b.catalog.Stats()
	iconStats := b.icons.Stats()

	storage := "not available"
	switch {
	case b.backend != nil && b.loadErr != nil:
		storage = fmt.Sprintf("%s (read-only: %v)", b.cfg.Storage.Driver, b.loadErr)
	case b.backend != nil:
		storage = fmt.Sprintf("%s (%d outfits)", b.cfg.Storage.Driver, b.store.Len())
	}

	return []string{
		"Diagnostics:",
		fmt.Sprintf(" - Catalog: %d items, %d dyes, %d skipped",
			stats.Total(), len(b.catalog.Dyes()),
			stats.SkippedNoID+stats.SkippedNoIcon+stats.SkippedUnclassified+stats.SkippedDuplicate),
		fmt.Sprintf(" - Icons: %d cached, %d hits, %d misses, %d failures",
			iconStats.Entries, iconStats.Hits, iconStats.Misses, iconStats.Failures),
		" - Storage: " + storage,
		" - " + b.bridge.Status(),
	}
}

// PrintDiagnostics writes Diagnostics to chat.
func (b *Boutique) PrintDiagnostics() {
	for _, line := range b.Diagnostics() {
		b.chat.Print(line)
	}
}

// Close releases icons and closes storage.
func (b *Boutique) Close() error {
	b.icons.Close()
	if b.backend == nil {
		return nil
	}
	if err := b.backend.Close(); err != nil {
		b.log.Warn("failed to close outfit storage", zap.Error(err))
		return err
	}
	return nil
}

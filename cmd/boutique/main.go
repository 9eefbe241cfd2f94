// boutique is a command-line host for The Crystarium Boutique: it browses the
// item catalog, previews items and manages saved outfits.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/crystarium-boutique/internal/boutique"
	"github.com/Faultbox/crystarium-boutique/internal/chat"
	"github.com/Faultbox/crystarium-boutique/internal/config"
	"github.com/Faultbox/crystarium-boutique/internal/gear"
	"github.com/Faultbox/crystarium-boutique/internal/logger"
)

func main() {
	// Parse global flags first; the command follows them
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command, args := args[0], args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	b := boutique.New(ctx, cfg, boutique.Deps{
		Log:  logger.Log,
		Chat: chat.NewWriter(os.Stdout, os.Stderr),
	})

	err = run(ctx, b, command, args)
	if cerr := b.Close(); cerr != nil {
		logger.Log.Warn("close failed", zap.Error(cerr))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, b *boutique.Boutique, command string, args []string) error {
	switch command {
	case "slots":
		return cmdSlots(b)
	case "list", "ls":
		return cmdList(b, args)
	case "dyes":
		return cmdDyes(b)
	case "show":
		return cmdShow(b, args)
	case "icon":
		return cmdIcon(b, args)
	case "preview", "try":
		return cmdPreview(b, args)
	case "outfit":
		return cmdOutfit(ctx, b, args)
	case "diag":
		b.PrintDiagnostics()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println(`boutique - The Crystarium Boutique glamour browser

Usage:
  boutique [flags] <command> [options]

Commands:
  slots                                 Show every slot and its item count
  list [-page N] <slot> [search]        List items of a slot (optional name search)
  dyes                                  List dyes
  show <itemId>                         Show one item
  icon <iconId> [out.png]               Load an icon and optionally write it as PNG
  preview [-dye N] <itemId>             Preview an item on the try-on surface
  outfit list                           List saved outfits
  outfit show <name>                    Show the pieces of a saved outfit
  outfit save <name> <slot=item[:dye]>...  Save an outfit
  outfit delete <name>                  Delete a saved outfit
  outfit export <name>                  Print an outfit's share text
  outfit import <name> <file|->         Save an outfit from share text
  outfit apply <name>                   Preview every piece of a saved outfit
  diag                                  Show diagnostics

Flags:
  -config, -debug, -items, -icons, -encoding, -store, -store-driver, -preview, -quiet

Examples:
  boutique list Body rob
  boutique -preview echo preview -dye 12 7
  boutique outfit save Summer Head=7:5 Feet=200
  boutique outfit export Summer`)
}

func cmdSlots(b *boutique.Boutique) error {
	kept := b.Catalog().Stats().Kept
	for _, s := range gear.Slots() {
		fmt.Printf("  %-10s %d\n", s, kept[s])
	}
	return nil
}

func cmdList(b *boutique.Boutique, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "Page to show (1-based)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: boutique list [-page N] <slot> [search]")
	}

	slot, err := gear.ParseSlot(fs.Arg(0))
	if err != nil {
		return err
	}
	search := strings.Join(fs.Args()[1:], " ")

	result, err := b.Browse(slot, search, *page)
	if err != nil {
		return err
	}
	for _, it := range result.Items {
		fmt.Printf("  %8d  %-40s icon %d\n", it.ID, it.Label(), it.IconID)
	}
	fmt.Printf("Page %d/%d, %d items\n", result.Page, result.Pages, result.Total)
	return nil
}

func cmdDyes(b *boutique.Boutique) error {
	fmt.Printf("  %5d  %s\n", gear.NoDye, gear.None().Name)
	for _, d := range b.Catalog().Dyes() {
		fmt.Printf("  %5d  %s\n", d.ID, d.Name)
	}
	return nil
}

func cmdShow(b *boutique.Boutique, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: boutique show <itemId>")
	}
	id, err := parseUint(args[0], 32)
	if err != nil {
		return err
	}
	item, ok := b.Catalog().Item(uint32(id))
	if !ok {
		return fmt.Errorf("%w: %d", boutique.ErrUnknownItem, id)
	}
	slot, _ := b.Catalog().SlotOf(item.ID)

	fmt.Printf("Item:  %d\n", item.ID)
	fmt.Printf("Name:  %s\n", item.Label())
	fmt.Printf("Slot:  %s\n", slot)
	fmt.Printf("Icon:  %d\n", item.IconID)
	return nil
}

func cmdIcon(b *boutique.Boutique, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: boutique icon <iconId> [out.png]")
	}
	id, err := parseUint(args[0], 32)
	if err != nil {
		return err
	}
	h, ok := b.Icons().Get(uint32(id))
	if !ok {
		return fmt.Errorf("icon %d not available", id)
	}
	img := h.Image()
	fmt.Printf("Icon %d: %dx%d\n", id, img.Bounds().Dx(), img.Bounds().Dy())

	if len(args) < 2 {
		return nil
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", args[1], err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[1])
	return nil
}

func cmdPreview(b *boutique.Boutique, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	dye := fs.Uint("dye", 0, "Dye id (0 = no dye)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: boutique preview [-dye N] <itemId>")
	}
	id, err := parseUint(fs.Arg(0), 32)
	if err != nil {
		return err
	}
	slot, ok := b.Catalog().SlotOf(uint32(id))
	if !ok {
		return fmt.Errorf("%w: %d", boutique.ErrUnknownItem, id)
	}
	if *dye > 0xFFFF {
		return fmt.Errorf("dye %d out of range", *dye)
	}

	if err := b.SetDye(slot, uint16(*dye)); err != nil {
		return err
	}
	return b.Select(slot, uint32(id))
}

func cmdOutfit(ctx context.Context, b *boutique.Boutique, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: boutique outfit list|show|save|delete|export|import|apply")
	}
	sub, args := args[0], args[1:]

	if sub == "list" {
		for _, name := range b.Store().List() {
			o, _ := b.Store().Get(name)
			fmt.Printf("  %-24s %d pieces\n", name, o.Len())
		}
		return nil
	}

	if len(args) < 1 {
		return fmt.Errorf("usage: boutique outfit %s <name>", sub)
	}
	name := args[0]

	switch sub {
	case "show":
		o, ok := b.Store().Get(name)
		if !ok {
			return fmt.Errorf("%w: %q", boutique.ErrUnknownOutfit, name)
		}
		for _, s := range o.Slots() {
			p, _ := o.Piece(s)
			item, _ := b.Catalog().Item(p.ItemID)
			if item.ID == 0 {
				item = gear.Item{ID: p.ItemID}
			}
			fmt.Printf("  %-10s %8d  %-32s %s\n", s, p.ItemID, item.Label(), gear.DyeLabel(p.DyeID))
		}
		return nil

	case "save":
		b.ClearSelections()
		for _, arg := range args[1:] {
			slot, itemID, dyeID, err := parsePiece(arg)
			if err != nil {
				return err
			}
			if err := b.SetDye(slot, dyeID); err != nil {
				return err
			}
			if err := b.Select(slot, itemID); err != nil {
				return err
			}
		}
		if err := b.SaveDraft(ctx, name); err != nil {
			return err
		}
		fmt.Printf("Saved %q (%d pieces)\n", name, b.Draft().Len())
		return nil

	case "delete":
		existed, err := b.DeleteOutfit(ctx, name)
		if err != nil {
			return err
		}
		if !existed {
			return fmt.Errorf("%w: %q", boutique.ErrUnknownOutfit, name)
		}
		fmt.Printf("Deleted %q\n", name)
		return nil

	case "export":
		text, err := b.Share(name)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil

	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: boutique outfit import <name> <file|->")
		}
		text, err := readInput(args[1])
		if err != nil {
			return err
		}
		if err := b.ImportShared(ctx, name, text); err != nil {
			return err
		}
		fmt.Printf("Imported %q\n", name)
		return nil

	case "apply":
		return b.ApplyOutfit(name)

	default:
		return fmt.Errorf("unknown outfit command: %s", sub)
	}
}

// parsePiece reads "Slot=item[:dye]".
func parsePiece(arg string) (gear.Slot, uint32, uint16, error) {
	slotName, rest, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, 0, 0, fmt.Errorf("piece %q: want slot=item[:dye]", arg)
	}
	slot, err := gear.ParseSlot(slotName)
	if err != nil {
		return 0, 0, 0, err
	}

	itemText, dyeText, hasDye := strings.Cut(rest, ":")
	itemID, err := parseUint(itemText, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("piece %q: %w", arg, err)
	}
	var dyeID uint64
	if hasDye {
		if dyeID, err = parseUint(dyeText, 16); err != nil {
			return 0, 0, 0, fmt.Errorf("piece %q: %w", arg, err)
		}
	}
	return slot, uint32(itemID), uint16(dyeID), nil
}

func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return v, nil
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

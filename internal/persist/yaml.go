package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
	"github.com/Faultbox/crystarium-boutique/internal/outfit"
)

// DocumentVersion is the outfits document version written by YAMLFile.
const DocumentVersion = 1

type document struct {
	Version int                            `yaml:"version"`
	Outfits map[string]map[gear.Slot]piece `yaml:"outfits"`
}

type piece struct {
	Item uint32 `yaml:"item"`
	Dye  uint16 `yaml:"dye,omitempty"`
}

// YAMLFile keeps outfits in a single YAML document.
type YAMLFile struct {
	path string
}

// NewYAMLFile returns a backend for the document at path. The file is
// created on the first Save.
func NewYAMLFile(path string) (*YAMLFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return &YAMLFile{path: filepath.Clean(path)}, nil
}

// Path returns the document location.
func (f *YAMLFile) Path() string {
	return f.path
}

// Load reads the document. A missing file yields no outfits.
func (f *YAMLFile) Load(ctx context.Context) (map[string]outfit.Outfit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]outfit.Outfit{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read outfits: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse outfits %s: %w", f.path, err)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("outfits %s: version %d is newer than supported %d", f.path, doc.Version, DocumentVersion)
	}

	out := make(map[string]outfit.Outfit, len(doc.Outfits))
	for name, slots := range doc.Outfits {
		pieces := make(map[gear.Slot]outfit.Piece, len(slots))
		for s, p := range slots {
			pieces[s] = outfit.Piece{ItemID: p.Item, DyeID: p.Dye}
		}
		out[name] = outfit.New(pieces)
	}
	return out, nil
}

// Save writes every outfit, replacing the previous document. The document
// is written to a sibling temp file first and renamed into place.
func (f *YAMLFile) Save(ctx context.Context, outfits map[string]outfit.Outfit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{
		Version: DocumentVersion,
		Outfits: make(map[string]map[gear.Slot]piece, len(outfits)),
	}
	for name, o := range outfits {
		slots := make(map[gear.Slot]piece, o.Len())
		for s, p := range o.Pieces() {
			slots[s] = piece{Item: p.ItemID, Dye: p.DyeID}
		}
		doc.Outfits[name] = slots
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode outfits: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create outfits dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write outfits: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace outfits: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (f *YAMLFile) Close() error {
	return nil
}

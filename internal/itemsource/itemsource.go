// Package itemsource reads the raw item and dye tables the catalog is built
// from. Tables are exported from the game data as a YAML sheet:
//
//	version: 1
//	flags: [MainHand, OffHand, Head, Body, ...]   # optional, defaults to EquipSlotCategoryV1
//	items:
//	  - {id: 100, name: Robe of Wind, icon: 5, equip: [Body]}
//	dyes:
//	  - {id: 1, name: Snow White}
package itemsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/crystarium-boutique/internal/catalog"
	"github.com/Faultbox/crystarium-boutique/internal/gear"
)

// SheetVersion is the newest sheet layout this package reads.
const SheetVersion = 1

type sheet struct {
	Version int       `yaml:"version"`
	Flags   []string  `yaml:"flags"`
	Items   []itemRow `yaml:"items"`
	Dyes    []dyeRow  `yaml:"dyes"`
}

type itemRow struct {
	ID    uint32   `yaml:"id"`
	Name  string   `yaml:"name"`
	Icon  uint32   `yaml:"icon"`
	Equip []string `yaml:"equip"`
}

type dyeRow struct {
	ID   uint16 `yaml:"id"`
	Name string `yaml:"name"`
}

// Source is a fully read item sheet.
type Source struct {
	Schema gear.Schema
	Items  []catalog.RawItem
	Dyes   []catalog.RawDye
}

// Load reads a sheet file. encoding names the file's text encoding (see
// Encodings); empty means UTF-8.
func Load(path, encoding string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", path, err)
	}
	src, err := Parse(data, encoding)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet %s: %w", path, err)
	}
	return src, nil
}

// Parse decodes sheet contents.
func Parse(data []byte, encoding string) (*Source, error) {
	enc, err := lookupEncoding(encoding)
	if err != nil {
		return nil, err
	}
	data, err = toUTF8(data, enc)
	if err != nil {
		return nil, err
	}

	var doc sheet
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version > SheetVersion {
		return nil, fmt.Errorf("sheet version %d is newer than supported version %d", doc.Version, SheetVersion)
	}

	schema := gear.EquipSlotCategoryV1
	if len(doc.Flags) > 0 {
		schema = gear.Schema{Version: doc.Version, Names: doc.Flags}
	}

	src := &Source{
		Schema: schema,
		Items:  make([]catalog.RawItem, 0, len(doc.Items)),
		Dyes:   make([]catalog.RawDye, 0, len(doc.Dyes)),
	}

	for i, row := range doc.Items {
		attrs, err := schema.Set(row.Equip...)
		if err != nil {
			return nil, fmt.Errorf("item %d (row %d): %w", row.ID, i, err)
		}
		src.Items = append(src.Items, catalog.RawItem{
			ID:         row.ID,
			Name:       row.Name,
			IconID:     row.Icon,
			Attributes: attrs,
		})
	}

	for _, row := range doc.Dyes {
		src.Dyes = append(src.Dyes, catalog.RawDye{ID: row.ID, Name: row.Name})
	}

	return src, nil
}

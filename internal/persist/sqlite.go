package persist

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Faultbox/crystarium-boutique/internal/gear"
	"github.com/Faultbox/crystarium-boutique/internal/outfit"
)

//go:embed schema.sql
var schemaSQL string

// SQLite keeps outfits as one row per assigned slot.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and creates the schema if needed.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads every stored outfit.
func (s *SQLite) Load(ctx context.Context) (map[string]outfit.Outfit, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT o.name, p.slot, p.item_id, p.dye_id
		 FROM outfits o
		 LEFT JOIN outfit_pieces p ON p.outfit_name = o.name
		 ORDER BY o.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	defer rows.Close()

	pieces := make(map[string]map[gear.Slot]outfit.Piece)
	for rows.Next() {
		var (
			name   string
			slot   sql.NullString
			itemID sql.NullInt64
			dyeID  sql.NullInt64
		)
		if err := rows.Scan(&name, &slot, &itemID, &dyeID); err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		if pieces[name] == nil {
			pieces[name] = make(map[gear.Slot]outfit.Piece)
		}
		if !slot.Valid {
			continue
		}
		gs, err := gear.ParseSlot(slot.String)
		if err != nil {
			return nil, fmt.Errorf("outfit %q: %w", name, err)
		}
		pieces[name][gs] = outfit.Piece{ItemID: uint32(itemID.Int64), DyeID: uint16(dyeID.Int64)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfits: %w", err)
	}

	out := make(map[string]outfit.Outfit, len(pieces))
	for name, p := range pieces {
		out[name] = outfit.New(p)
	}
	return out, nil
}

// Save replaces every stored outfit in a single transaction.
func (s *SQLite) Save(ctx context.Context, outfits map[string]outfit.Outfit) (err error) {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM outfit_pieces`); err != nil {
		return fmt.Errorf("clear pieces: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM outfits`); err != nil {
		return fmt.Errorf("clear outfits: %w", err)
	}

	for name, o := range outfits {
		if _, err = tx.ExecContext(ctx, `INSERT INTO outfits (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("insert outfit %q: %w", name, err)
		}
		for _, slot := range o.Slots() {
			p, _ := o.Piece(slot)
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO outfit_pieces (outfit_name, slot, item_id, dye_id) VALUES (?, ?, ?, ?)`,
				name, slot.String(), int64(p.ItemID), int64(p.DyeID),
			); err != nil {
				return fmt.Errorf("insert piece %q/%s: %w", name, slot, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit outfits: %w", err)
	}
	return nil
}

package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JonMunkholm/inobat/internal/core"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE categories (
		key         TEXT PRIMARY KEY,
		position    INTEGER NOT NULL,
		nom         TEXT NOT NULL,
		description TEXT NOT NULL,
		exemption   TEXT
	)`,
	`CREATE TABLE subcategories (
		category_key TEXT NOT NULL REFERENCES categories(key),
		key          TEXT NOT NULL,
		position     INTEGER NOT NULL,
		code         TEXT NOT NULL,
		nom          TEXT NOT NULL,
		PRIMARY KEY (category_key, key)
	)`,
	`CREATE TABLE entries (
		id              INTEGER PRIMARY KEY,
		category_key    TEXT NOT NULL,
		subcategory_key TEXT NOT NULL,
		position        INTEGER NOT NULL,
		article_no      TEXT NOT NULL,
		tarif_ht        TEXT NOT NULL,
		ansi            TEXT,
		iec             TEXT,
		designation     TEXT,
		remarque        TEXT,
		poids_min       INTEGER,
		poids_max       INTEGER,
		FOREIGN KEY (category_key, subcategory_key) REFERENCES subcategories(category_key, key)
	)`,
	`CREATE TABLE keywords (
		tag      TEXT NOT NULL,
		position INTEGER NOT NULL,
		synonym  TEXT NOT NULL
	)`,
	`CREATE INDEX idx_entries_article_no ON entries(article_no)`,
}

// StageSQLite builds a fresh SQLite database in a temp file next to path
// without touching path itself. tarif_ht is stored as decimal text to keep
// the exact value.
func StageSQLite(ctx context.Context, path string, db *core.Database) (*Staged, error) {
	tmpName, err := stageSQLite(ctx, path, db)
	if err != nil {
		return nil, fmt.Errorf("write sqlite %s: %w", path, err)
	}
	return &Staged{kind: "sqlite", tmp: tmpName, path: path}, nil
}

func stageSQLite(ctx context.Context, path string, catalog *core.Database) (_ string, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// SQLite treats an empty file as an empty database.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	conn, err := sql.Open("sqlite", tmpName)
	if err != nil {
		return "", err
	}

	if err = fillSQLite(ctx, conn, catalog); err != nil {
		_ = conn.Close()
		return "", err
	}
	if err = conn.Close(); err != nil {
		return "", err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return "", err
	}
	return tmpName, nil
}

func fillSQLite(ctx context.Context, conn *sql.DB, catalog *core.Database) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // No-op once committed

	for _, stmt := range sqliteSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	meta := [][2]string{
		{"source", catalog.Source},
		{"dateValidite", catalog.EffectiveDate},
		{"tva", strconv.FormatFloat(catalog.VATRate, 'f', -1, 64)},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert metadata: %w", err)
		}
	}

	insCat, err := tx.PrepareContext(ctx,
		`INSERT INTO categories (key, position, nom, description, exemption) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insCat.Close()

	insSub, err := tx.PrepareContext(ctx,
		`INSERT INTO subcategories (category_key, key, position, code, nom) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insSub.Close()

	insEntry, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (category_key, subcategory_key, position, article_no, tarif_ht,
			ansi, iec, designation, remarque, poids_min, poids_max)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insEntry.Close()

	for ci, catKey := range catalog.Categories.Keys() {
		cat, _ := catalog.Categories.Get(catKey)
		if _, err := insCat.ExecContext(ctx, catKey, ci, cat.Name, cat.Description, nullString(cat.Exemption)); err != nil {
			return fmt.Errorf("insert category %s: %w", catKey, err)
		}

		for si, subKey := range cat.Subcategories.Keys() {
			sub, _ := cat.Subcategories.Get(subKey)
			if _, err := insSub.ExecContext(ctx, catKey, subKey, si, sub.Code, sub.Name); err != nil {
				return fmt.Errorf("insert subcategory %s: %w", subKey, err)
			}

			for ei, e := range sub.Entries {
				if _, err := insEntry.ExecContext(ctx,
					catKey, subKey, ei, e.ArticleNo, e.Tariff.String(),
					nullString(e.ANSI), nullString(e.IEC), nullString(e.Designation), nullString(e.Remark),
					nullInt(e.WeightMin), nullInt(e.WeightMax),
				); err != nil {
					return fmt.Errorf("insert entry %s: %w", e.ArticleNo, err)
				}
			}
		}
	}

	for _, tag := range catalog.Keywords.Keys() {
		syn, _ := catalog.Keywords.Get(tag)
		for i, s := range syn {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO keywords (tag, position, synonym) VALUES (?, ?, ?)`, tag, i, s); err != nil {
				return fmt.Errorf("insert keyword %s: %w", tag, err)
			}
		}
	}

	return tx.Commit()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

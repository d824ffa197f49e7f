package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/medphys/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// lookupQuery selects every unit with the given identifier.
const lookupQuery = `
SELECT id, site, location, location_detail, type, manufacturer, model
FROM equipment
WHERE id = ?
`

// EquipmentDB looks up equipment records.
type EquipmentDB struct {
	db *sql.DB
}

// Open opens the equipment database at path read-only.
// A missing file or a database that cannot be reached yields ErrConnection.
func Open(path string) (*EquipmentDB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrConnection, path, err)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrConnection, path, err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrConnection, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", model.ErrConnection, err)
	}

	return New(db), nil
}

// readOnlyDSN returns a file: URI opening path read-only. The path is made
// absolute and escaped, so "?" or "#" in a directory name stay part of the
// path. modernc.org/sqlite only honours URI parameters with the file: prefix.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *EquipmentDB {
	return &EquipmentDB{db: db}
}

// Close closes the database.
func (e *EquipmentDB) Close() error {
	return e.db.Close()
}

// LookupByID returns every unit with the identifier id, in storage order.
// No match yields ErrNotFound; a failing query yields ErrConnection.
// NULL columns become empty strings.
func (e *EquipmentDB) LookupByID(ctx context.Context, id string) ([]model.UnitRecord, error) {
	rows, err := e.db.QueryContext(ctx, lookupQuery, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query equipment: %w", model.ErrConnection, err)
	}
	defer rows.Close()

	var units []model.UnitRecord
	for rows.Next() {
		var (
			unitID, site, location, detail sql.NullString
			unitType, manufacturer, name   sql.NullString
		)
		if err := rows.Scan(&unitID, &site, &location, &detail, &unitType, &manufacturer, &name); err != nil {
			return nil, fmt.Errorf("%w: failed to read equipment row: %w", model.ErrConnection, err)
		}
		units = append(units, model.UnitRecord{
			ID:             unitID.String,
			Site:           site.String,
			Location:       location.String,
			LocationDetail: detail.String,
			RawType:        model.UnitType(unitType.String),
			Manufacturer:   manufacturer.String,
			Model:          name.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read equipment: %w", model.ErrConnection, err)
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return units, nil
}

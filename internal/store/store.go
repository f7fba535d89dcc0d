// Package store persists the city/plot lookup table in DuckDB. The analysis
// pipeline itself never writes here; results live only in memory.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// Store manages the reference dataset via DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "plotpal.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS plots_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cities (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			country TEXT,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS plots (
			id INTEGER PRIMARY KEY DEFAULT nextval('plots_seq'),
			city_code TEXT NOT NULL REFERENCES cities(code),
			area_sqm DOUBLE NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			source TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// UpsertCity inserts or replaces one city row.
func (s *Store) UpsertCity(c model.City) error {
	_, err := s.DB.Exec("INSERT OR REPLACE INTO cities (code, name, country, lat, lng) VALUES (?, ?, ?, ?, ?)",
		c.Code, c.Name, c.Country, c.Lat, c.Lng)
	return err
}

// LookupCity finds a city by code or name, case-insensitively. A miss
// returns (nil, nil) so callers can fall through to a network geocoder.
func (s *Store) LookupCity(name string) (*model.City, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	var c model.City
	err := s.DB.QueryRow(
		"SELECT code, name, country, lat, lng FROM cities WHERE lower(code) = ? OR lower(name) = ?",
		q, q).Scan(&c.Code, &c.Name, &c.Country, &c.Lat, &c.Lng)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCities returns all cities ordered by name.
func (s *Store) ListCities() ([]model.City, error) {
	rows, err := s.DB.Query("SELECT code, name, country, lat, lng FROM cities ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []model.City
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.Code, &c.Name, &c.Country, &c.Lat, &c.Lng); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// WritePlots replaces all plots for a city in one transaction.
func (s *Store) WritePlots(cityCode string, plots []model.Plot) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM plots WHERE city_code = ?", cityCode); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO plots (city_code, area_sqm, lat, lng, source) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range plots {
		if _, err := stmt.Exec(cityCode, p.AreaSqm, p.Lat, p.Lng, p.Source); err != nil {
			return fmt.Errorf("inserting plot for %s: %w", cityCode, err)
		}
	}

	return tx.Commit()
}

// PlotsForCity returns a city's known plots ordered by area, largest first.
func (s *Store) PlotsForCity(cityCode string) ([]model.Plot, error) {
	rows, err := s.DB.Query(
		"SELECT id, city_code, area_sqm, lat, lng, source FROM plots WHERE city_code = ? ORDER BY area_sqm DESC",
		cityCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plots []model.Plot
	for rows.Next() {
		var p model.Plot
		var source sql.NullString
		if err := rows.Scan(&p.ID, &p.CityCode, &p.AreaSqm, &p.Lat, &p.Lng, &source); err != nil {
			return nil, err
		}
		p.Source = source.String
		plots = append(plots, p)
	}
	return plots, rows.Err()
}

// CityCount returns the number of cities in the table.
func (s *Store) CityCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM cities").Scan(&n)
	return n
}

// PlotCount returns the number of plots in the table.
func (s *Store) PlotCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM plots").Scan(&n)
	return n
}

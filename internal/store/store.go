// Package store persists estimates and per-user custom rates in SQLite. It
// never computes anything: parameters and totals arrive as blobs produced by
// the estimation engine and are handed back untouched.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradebid/tradebid/internal/rates"
)

// ErrNotFound is returned when an estimate id does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// New returns a store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Estimate is one persisted estimate row. Params holds the serialized
// engine parameters; Totals the serialized totals snapshot. Total and the
// range columns are denormalized for list views.
type Estimate struct {
	ID        string    `json:"id"`
	Trade     string    `json:"trade"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Params    []byte    `json:"params"`
	Totals    []byte    `json:"totals"`
	Total     float64   `json:"total"`
	RangeLow  float64   `json:"rangeLow"`
	RangeHigh float64   `json:"rangeHigh"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateEstimate inserts a new estimate and returns its id.
func (s *Store) CreateEstimate(e Estimate) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO estimates (id, trade, title, notes, params_json, totals_json, total, range_low, range_high, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.Trade, e.Title, e.Notes, string(e.Params), string(e.Totals), e.Total, e.RangeLow, e.RangeHigh, now, now)
	if err != nil {
		return "", fmt.Errorf("insert estimate: %w", err)
	}

	return id, nil
}

// GetEstimate loads one estimate by id.
func (s *Store) GetEstimate(id string) (Estimate, error) {
	var (
		e      Estimate
		params string
		totals string
	)
	err := s.db.QueryRow(`
		SELECT id, trade, title, notes, params_json, totals_json, total, range_low, range_high, created_at, updated_at
		FROM estimates
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Trade, &e.Title, &e.Notes, &params, &totals, &e.Total, &e.RangeLow, &e.RangeHigh, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, ErrNotFound
	}
	if err != nil {
		return Estimate{}, fmt.Errorf("query estimate: %w", err)
	}

	e.Params = []byte(params)
	e.Totals = []byte(totals)
	return e, nil
}

// ListEstimates returns estimates newest first, optionally filtered by a
// case-insensitive substring match on title or notes.
func (s *Store) ListEstimates(query string) ([]Estimate, error) {
	sqlQuery := `
		SELECT id, trade, title, notes, total, range_low, range_high, created_at, updated_at
		FROM estimates
	`
	var args []any
	if strings.TrimSpace(query) != "" {
		sqlQuery += ` WHERE title LIKE ? COLLATE NOCASE OR notes LIKE ? COLLATE NOCASE`
		pattern := "%" + strings.TrimSpace(query) + "%"
		args = append(args, pattern, pattern)
	}
	sqlQuery += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	var list []Estimate
	for rows.Next() {
		var e Estimate
		if err := rows.Scan(&e.ID, &e.Trade, &e.Title, &e.Notes, &e.Total, &e.RangeLow, &e.RangeHigh, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan estimate row: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimate rows: %w", err)
	}

	return list, nil
}

// UpdateEstimate replaces an estimate's metadata and snapshot.
func (s *Store) UpdateEstimate(e Estimate) error {
	res, err := s.db.Exec(`
		UPDATE estimates
		SET title = ?, notes = ?, params_json = ?, totals_json = ?, total = ?, range_low = ?, range_high = ?, updated_at = ?
		WHERE id = ?
	`, e.Title, e.Notes, string(e.Params), string(e.Totals), e.Total, e.RangeLow, e.RangeHigh, time.Now().UTC(), e.ID)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update estimate rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEstimate removes an estimate by id.
func (s *Store) DeleteEstimate(id string) error {
	res, err := s.db.Exec(`DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete estimate rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCustomRates loads a user's saved rates document. A user without one
// gets an empty document, not an error.
func (s *Store) GetCustomRates(email string) (rates.CustomRates, error) {
	var raw string
	err := s.db.QueryRow(`SELECT rates_json FROM custom_rates WHERE email = ?`, email).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return rates.CustomRates{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query custom rates: %w", err)
	}

	custom := rates.CustomRates{}
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		// A corrupt document falls back to industry defaults rather than
		// blocking estimation.
		return rates.CustomRates{}, nil
	}
	return custom, nil
}

// SaveCustomRates upserts a user's saved rates document.
func (s *Store) SaveCustomRates(email string, custom rates.CustomRates) error {
	raw, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("marshal custom rates: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO custom_rates (email, rates_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET rates_json = excluded.rates_json, updated_at = excluded.updated_at
	`, email, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert custom rates: %w", err)
	}
	return nil
}

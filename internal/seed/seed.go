// Package seed performs the idempotent startup seed: the admin user, an
// empty custom-rates document for them, and (in dev) one demo estimate so a
// fresh database isn't an empty screen.
package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradebid/tradebid/internal/estimate"
	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/store"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	DemoEstimate  bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	stats := Stats{}

	if err := seedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		return Stats{}, err
	}
	if err := seedCustomRates(db, cfg.AdminEmail, &stats); err != nil {
		return Stats{}, err
	}
	if cfg.DemoEstimate {
		if err := seedDemoEstimate(db, &stats); err != nil {
			return Stats{}, err
		}
	}

	return stats, nil
}

func seedAdmin(db *sql.DB, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func seedCustomRates(db *sql.DB, email string, stats *Stats) error {
	if email == "" {
		return nil
	}

	var exists bool
	if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM custom_rates WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check custom rates existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := store.New(db).SaveCustomRates(email, rates.CustomRates{}); err != nil {
		return fmt.Errorf("insert empty custom rates: %w", err)
	}
	stats.Inserts++
	return nil
}

func seedDemoEstimate(db *sql.DB, stats *Stats) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM estimates`).Scan(&count); err != nil {
		return fmt.Errorf("count estimates: %w", err)
	}
	if count > 0 {
		return nil
	}

	demo := estimate.NewPaintingEstimate(nil)
	demo.SetSqft(400, 100)
	demo.AddAddon("trim", 60)

	params, err := demo.MarshalParams()
	if err != nil {
		return fmt.Errorf("marshal demo params: %w", err)
	}
	totals, err := json.Marshal(demo.Totals)
	if err != nil {
		return fmt.Errorf("marshal demo totals: %w", err)
	}

	_, err = store.New(db).CreateEstimate(store.Estimate{
		Trade:     string(rates.TradePainting),
		Title:     "Demo: two-bedroom repaint",
		Notes:     "Sample estimate created on first run",
		Params:    params,
		Totals:    totals,
		Total:     demo.Totals.Total,
		RangeLow:  demo.Totals.Range.Low,
		RangeHigh: demo.Totals.Range.High,
	})
	if err != nil {
		return fmt.Errorf("insert demo estimate: %w", err)
	}
	stats.Inserts++
	return nil
}

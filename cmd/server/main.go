package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradebid/tradebid/internal/config"
	"github.com/tradebid/tradebid/internal/db"
	"github.com/tradebid/tradebid/internal/migrations"
	"github.com/tradebid/tradebid/internal/seed"
	"github.com/tradebid/tradebid/internal/store"
)

type server struct {
	auth  *authService
	store *store.Store
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoEstimate:  cfg.IsDev(),
	})
	if err != nil {
		log.Fatalf("failed to run startup seed: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("startup seed inserted %d rows", stats.Inserts)
	}

	srv := &server{
		auth:  newAuthService(database, cfg.SessionSecret),
		store: store.New(database),
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/login", s.handleLogin)
	r.Post("/api/logout", s.handleLogout)
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/api/estimates", s.handleListEstimates)
		r.Post("/api/estimates", s.handleCreateEstimate)
		r.Get("/api/estimates/{id}", s.handleGetEstimate)
		r.Put("/api/estimates/{id}", s.handleUpdateEstimate)
		r.Delete("/api/estimates/{id}", s.handleDeleteEstimate)
		r.Get("/api/settings/rates", s.handleGetRates)
		r.Put("/api/settings/rates", s.handleSaveRates)
	})
	return r
}

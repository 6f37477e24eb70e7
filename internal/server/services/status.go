package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Muliro1/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/Muliro1/alx-files-manager/internal/server/sessions"
)

// Health reports the liveness of the two backing collaborators.
type Health struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats holds the global resource counters.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// StatusService answers the unauthenticated health and counter queries.
type StatusService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	sessions sessions.Store
}

func NewStatusService(db *sql.DB, rm repomanager.RepositoryManager, store sessions.Store) *StatusService {
	return &StatusService{db: db, rm: rm, sessions: store}
}

// Check probes both collaborators independently. A probe failure flips the
// corresponding flag but never produces an error.
func (s *StatusService) Check(ctx context.Context) Health {
	h := Health{}
	if err := s.sessions.Ping(ctx); err == nil {
		h.Redis = true
	}
	if err := s.db.PingContext(ctx); err == nil {
		h.DB = true
	}
	return h
}

// Counters returns the total numbers of users and entries.
func (s *StatusService) Counters(ctx context.Context) (*Stats, error) {
	users, err := s.rm.Users(s.db).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	files, err := s.rm.Entries(s.db).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting entries: %w", err)
	}
	return &Stats{Users: users, Files: files}, nil
}

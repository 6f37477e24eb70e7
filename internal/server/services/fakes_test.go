package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/dbx"
	"github.com/Muliro1/alx-files-manager/internal/logging"
	"github.com/Muliro1/alx-files-manager/internal/server/models"
	entriesrepo "github.com/Muliro1/alx-files-manager/internal/server/repositories/entries"
	usersrepo "github.com/Muliro1/alx-files-manager/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard)
}

// --- session store fake ---

// failingSessionStore simulates a session-store outage.
type failingSessionStore struct {
	getErr error
}

func (f *failingSessionStore) Put(context.Context, string, string, time.Duration) error {
	return f.getErr
}
func (f *failingSessionStore) Get(context.Context, string) (string, error) { return "", f.getErr }
func (f *failingSessionStore) Delete(context.Context, string) error        { return f.getErr }
func (f *failingSessionStore) Ping(context.Context) error                  { return f.getErr }

// --- users repository fake ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	count    int64
	countErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = "u-created"
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

// --- entries repository fake ---

// memEntriesRepo is a small in-memory repository that keeps insertion order,
// so listing tests can assert pagination deterministically.
type memEntriesRepo struct {
	mu      sync.Mutex
	items   map[string]*models.FileEntry
	order   []string
	seq     int
	failErr error
}

func newMemEntriesRepo() *memEntriesRepo {
	return &memEntriesRepo{items: make(map[string]*models.FileEntry)}
}

func (r *memEntriesRepo) Create(ctx context.Context, e *models.FileEntry) (*models.FileEntry, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	out := *e
	out.ID = fmt.Sprintf("e%d", r.seq)
	r.items[out.ID] = &out
	r.order = append(r.order, out.ID)
	cp := out
	return &cp, nil
}

func (r *memEntriesRepo) GetByID(ctx context.Context, id string) (*models.FileEntry, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memEntriesRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.FileEntry, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (r *memEntriesRepo) SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || e.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	e.IsPublic = isPublic
	return nil
}

func (r *memEntriesRepo) ListPage(ctx context.Context, ownerID string, parent models.ParentRef, offset, limit int) ([]*models.FileEntry, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.FileEntry
	for _, id := range r.order {
		e := r.items[id]
		if e.OwnerID != ownerID || e.Parent.Sentinel() != parent.Sentinel() {
			continue
		}
		matched = append(matched, e)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]*models.FileEntry, 0, len(matched))
	for _, e := range matched {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memEntriesRepo) Count(ctx context.Context) (int64, error) {
	if r.failErr != nil {
		return 0, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

// --- repository manager fake ---

type fakeRepoManager struct {
	u usersrepo.Repository
	e entriesrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entriesrepo.Repository   { return m.e }

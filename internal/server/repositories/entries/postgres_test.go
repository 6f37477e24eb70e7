package entries

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func entryColumns() []string {
	return []string{"id", "owner_id", "name", "kind", "is_public", "parent_id", "storage_path", "created_at"}
}

func TestCreate_Folder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+files\s*\(owner_id,\s*name,\s*kind,\s*is_public,\s*parent_id,\s*storage_path\)`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", "docs", models.KindFolder, false, sql.NullString{}, sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("f-1", now))

	e := &models.FileEntry{OwnerID: "u-1", Name: "docs", Kind: models.KindFolder, Parent: models.RootParent()}
	got, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" || !got.Parent.IsRoot() {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestCreate_FileUnderParent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+files`).
		WithArgs("u-1", "a.txt", models.KindFile, true,
			sql.NullString{String: "f-1", Valid: true},
			sql.NullString{String: "ab/key", Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("x-1", time.Now()))

	e := &models.FileEntry{
		OwnerID:     "u-1",
		Name:        "a.txt",
		Kind:        models.KindFile,
		IsPublic:    true,
		Parent:      models.ParentOf("f-1"),
		StoragePath: "ab/key",
	}
	got, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "x-1" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestGetByID_ScansParentAndStoragePath(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("x-1", "u-1", "a.txt", "file", false, "f-1", "ab/key", time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*owner_id.*WHERE\s+id\s*=\s*\$1`).
		WithArgs("x-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "x-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	parentID, ok := got.Parent.ID()
	if !ok || parentID != "f-1" {
		t.Fatalf("expected parent f-1, got %+v", got.Parent)
	}
	if got.StoragePath != "ab/key" {
		t.Fatalf("expected storage path, got %q", got.StoragePath)
	}
}

func TestGetByID_RootParentIsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("f-1", "u-1", "docs", "folder", false, nil, nil, time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*owner_id.*WHERE\s+id\s*=\s*\$1`).
		WithArgs("f-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !got.Parent.IsRoot() {
		t.Fatalf("expected root parent, got %+v", got.Parent)
	}
	if got.StoragePath != "" {
		t.Fatalf("folder must have no storage path, got %q", got.StoragePath)
	}
}

func TestGetByIDAndOwner_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*owner_id.*owner_id\s*=\s*\$2`).
		WithArgs("x-1", "other").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDAndOwner(context.Background(), "x-1", "other")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestSetPublic_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+files\s+SET\s+is_public\s*=\s*\$1`).
		WithArgs(true, "x-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPublic(context.Background(), "x-1", "u-1", true); err != nil {
		t.Fatalf("SetPublic error: %v", err)
	}
}

func TestSetPublic_NoRowMeansNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+files\s+SET\s+is_public\s*=\s*\$1`).
		WithArgs(true, "x-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPublic(context.Background(), "x-1", "intruder", true)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListPage_UnderParent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("x-1", "u-1", "a.txt", "file", false, "f-1", "k1", time.Now()).
		AddRow("x-2", "u-1", "b.txt", "file", false, "f-1", "k2", time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*owner_id.*parent_id\s*=\s*\$2.*ORDER\s+BY\s+created_at,\s*id`).
		WithArgs("u-1", "f-1", 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListPage(context.Background(), "u-1", models.ParentOf("f-1"), 0, 20)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "x-1" || got[1].ID != "x-2" {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestListPage_RootUsesIsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*owner_id.*parent_id\s+IS\s+NULL`).
		WithArgs("u-1", 20, 100).
		WillReturnRows(sqlmock.NewRows(entryColumns()))

	got, err := repo.ListPage(context.Background(), "u-1", models.RootParent(), 100, 20)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %+v", got)
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

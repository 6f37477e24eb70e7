package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/dbx"
	"github.com/Muliro1/alx-files-manager/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func parentArg(p models.ParentRef) sql.NullString {
	id, ok := p.ID()
	return sql.NullString{String: id, Valid: ok}
}

func scanEntry(row interface{ Scan(dest ...any) error }, e *models.FileEntry) error {
	var parentID, storagePath sql.NullString
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Kind, &e.IsPublic, &parentID, &storagePath, &e.CreatedAt); err != nil {
		return err
	}
	if parentID.Valid {
		e.Parent = models.ParentOf(parentID.String)
	} else {
		e.Parent = models.RootParent()
	}
	e.StoragePath = storagePath.String
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.FileEntry) (*models.FileEntry, error) {

	query :=
		`INSERT INTO files (owner_id, name, kind, is_public, parent_id, storage_path)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	storagePath := sql.NullString{String: entry.StoragePath, Valid: entry.StoragePath != ""}

	err := r.db.QueryRowContext(ctx, query,
		entry.OwnerID, entry.Name, entry.Kind, entry.IsPublic,
		parentArg(entry.Parent), storagePath).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileEntry, error) {
	query :=
		`SELECT id, owner_id, name, kind, is_public, parent_id, storage_path, created_at
		 FROM files
		 WHERE id = $1
		 `

	entry := &models.FileEntry{}
	err := scanEntry(r.db.QueryRowContext(ctx, query, id), entry)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.FileEntry, error) {
	query :=
		`SELECT id, owner_id, name, kind, is_public, parent_id, storage_path, created_at
		 FROM files
		 WHERE id = $1 AND owner_id = $2
		 `

	entry := &models.FileEntry{}
	err := scanEntry(r.db.QueryRowContext(ctx, query, id, ownerID), entry)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error {
	query :=
		`UPDATE files SET is_public = $1
		 WHERE id = $2 AND owner_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, isPublic, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListPage(ctx context.Context, ownerID string, parent models.ParentRef, offset, limit int) ([]*models.FileEntry, error) {

	var rows *sql.Rows
	var err error

	if parentID, ok := parent.ID(); ok {
		query :=
			`SELECT id, owner_id, name, kind, is_public, parent_id, storage_path, created_at
			 FROM files
			 WHERE owner_id = $1 AND parent_id = $2
			 ORDER BY created_at, id
			 LIMIT $3 OFFSET $4
			 `
		rows, err = r.db.QueryContext(ctx, query, ownerID, parentID, limit, offset)
	} else {
		query :=
			`SELECT id, owner_id, name, kind, is_public, parent_id, storage_path, created_at
			 FROM files
			 WHERE owner_id = $1 AND parent_id IS NULL
			 ORDER BY created_at, id
			 LIMIT $2 OFFSET $3
			 `
		rows, err = r.db.QueryContext(ctx, query, ownerID, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.FileEntry{}
	for rows.Next() {
		entry := &models.FileEntry{}
		if err := scanEntry(rows, entry); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

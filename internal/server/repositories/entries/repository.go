package entries

import (
	"context"

	"github.com/Muliro1/alx-files-manager/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.FileEntry) (*models.FileEntry, error)
	GetByID(ctx context.Context, id string) (*models.FileEntry, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.FileEntry, error)
	SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error
	ListPage(ctx context.Context, ownerID string, parent models.ParentRef, offset, limit int) ([]*models.FileEntry, error)
	Count(ctx context.Context) (int64, error)
}

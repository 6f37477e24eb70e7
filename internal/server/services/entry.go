package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/google/uuid"

	"github.com/Muliro1/alx-files-manager/internal/common"
	"github.com/Muliro1/alx-files-manager/internal/dbx"
	"github.com/Muliro1/alx-files-manager/internal/logging"
	"github.com/Muliro1/alx-files-manager/internal/server/models"
	"github.com/Muliro1/alx-files-manager/internal/server/queue"
	"github.com/Muliro1/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/Muliro1/alx-files-manager/internal/server/storage"
)

// ThumbnailJob references an uploaded image for the derived-variant worker.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// sizeVariants are the widths the derived-variant worker produces. The
// retrieval gate only resolves these, so a size token can never be used to
// probe arbitrary storage locations.
var sizeVariants = map[string]struct{}{
	"100": {},
	"250": {},
	"500": {},
}

// CreateRequest describes a new entry. Data carries the base64-encoded
// payload for file and image kinds and is ignored for folders.
type CreateRequest struct {
	Name     string
	Kind     models.EntryKind
	IsPublic bool
	ParentID string
	Data     string
}

// FetchResult is an opened payload plus the content type inferred from the
// entry's logical name.
type FetchResult struct {
	Content     io.ReadCloser
	ContentType string
}

// EntryService implements the upload pipeline, listing, and the
// visibility-gated retrieval of file system entries.
type EntryService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	gate   *Gate
	blobs  storage.BlobStore
	thumbs queue.Queue
	logger logging.Logger
}

func NewEntryService(db *sql.DB, rm repomanager.RepositoryManager, gate *Gate,
	blobs storage.BlobStore, thumbs queue.Queue, logger logging.Logger) *EntryService {
	return &EntryService{
		db:     db,
		rm:     rm,
		gate:   gate,
		blobs:  blobs,
		thumbs: thumbs,
		logger: logger,
	}
}

// newStorageKey generates a fresh location for payload bytes. The key is
// never derived from the entry's name: names collide, keys must not.
func newStorageKey() string {
	id := uuid.NewString()
	return fmt.Sprintf("%s/%s/%s", id[:2], id[2:4], id)
}

// resolveParent validates a caller-supplied parent reference.
//
// No ownership check is performed on the parent: a user who knows another
// user's folder ID may nest content under it. This is a deliberate
// relaxed-sharing behavior, not an oversight.
func (s *EntryService) resolveParent(ctx context.Context, ref models.ParentRef) (models.ParentRef, error) {
	parentID, ok := ref.ID()
	if !ok {
		return models.RootParent(), nil
	}

	repo := s.rm.Entries(s.db)
	parent, err := repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.ParentRef{}, common.ErrorParentNotFound
		}
		return models.ParentRef{}, common.ErrorInternal
	}
	if parent.Kind != models.KindFolder {
		return models.ParentRef{}, common.ErrorParentNotAFolder
	}

	return models.ParentOf(parent.ID), nil
}

// Create validates the request, persists payload bytes for file and image
// kinds, commits the metadata record, and hands image entries to the
// thumbnail queue.
//
// Bytes are written before the metadata commit, so a failure at any point
// never leaves a record referencing bytes that were not durably stored.
// The thumbnail enqueue runs only after a successful commit and its
// failure is logged, never surfaced to the uploader.
func (s *EntryService) Create(ctx context.Context, token string, req CreateRequest) (*models.EntryView, error) {
	ownerID, err := s.gate.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, common.ErrorMissingName
	}
	if !req.Kind.Valid() {
		return nil, common.ErrorInvalidKind
	}
	if req.Kind.HasContent() && req.Data == "" {
		return nil, common.ErrorMissingData
	}

	parent, err := s.resolveParent(ctx, models.ParseParentRef(req.ParentID))
	if err != nil {
		return nil, err
	}

	entry := &models.FileEntry{
		OwnerID:  ownerID,
		Name:     req.Name,
		Kind:     req.Kind,
		IsPublic: req.IsPublic,
		Parent:   parent,
	}

	if req.Kind.HasContent() {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, common.ErrorMissingData
		}

		key := newStorageKey()
		if err := s.blobs.EnsureArea(ctx, path.Dir(key)); err != nil {
			return nil, fmt.Errorf("error preparing storage area: %w", err)
		}
		if err := s.blobs.WriteAll(ctx, key, data); err != nil {
			return nil, fmt.Errorf("error writing payload: %w", err)
		}
		entry.StoragePath = key
	}

	repo := s.rm.Entries(s.db)
	entry, err = repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	if entry.Kind == models.KindImage {
		job := ThumbnailJob{FileID: entry.ID, UserID: ownerID}
		if err := s.thumbs.Enqueue(ctx, job); err != nil {
			s.logger.Error(ctx, "thumbnail job enqueue failed", "file_id", entry.ID, "error", err)
		}
	}

	return entry.View(), nil
}

// List returns one page of the caller's direct children under the given
// parent. Pages are fixed at common.PageSize entries; a page past the end
// yields an empty slice, not an error.
func (s *EntryService) List(ctx context.Context, token string, parentID string, page int) ([]*models.EntryView, error) {
	ownerID, err := s.gate.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if page < 0 {
		page = 0
	}

	repo := s.rm.Entries(s.db)
	entries, err := repo.ListPage(ctx, ownerID, models.ParseParentRef(parentID), page*common.PageSize, common.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	views := make([]*models.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, e.View())
	}
	return views, nil
}

// Publish marks the caller's entry as public.
func (s *EntryService) Publish(ctx context.Context, token, id string) (*models.EntryView, error) {
	return s.setVisibility(ctx, token, id, true)
}

// Unpublish marks the caller's entry as private.
func (s *EntryService) Unpublish(ctx context.Context, token, id string) (*models.EntryView, error) {
	return s.setVisibility(ctx, token, id, false)
}

// setVisibility updates and reselects the entry in one transaction. An
// entry that does not exist and one owned by somebody else produce the
// same ErrorNotFound, hiding the distinction from the caller.
func (s *EntryService) setVisibility(ctx context.Context, token, id string, isPublic bool) (*models.EntryView, error) {
	ownerID, err := s.gate.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	var entry *models.FileEntry
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Entries(tx)
		if err := repo.SetPublic(ctx, id, ownerID, isPublic); err != nil {
			return err
		}
		var selErr error
		entry, selErr = repo.GetByIDAndOwner(ctx, id, ownerID)
		return selErr
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating visibility: %w", err)
	}

	return entry.View(), nil
}

// Fetch opens the payload of an entry, enforcing the visibility rule:
// public entries are readable by anyone, private ones only by their owner.
// Every denied combination is reported as ErrorNotFound so private
// resources do not leak their existence. An optional size token selects a
// derived variant produced by the thumbnail worker.
func (s *EntryService) Fetch(ctx context.Context, token, id, size string) (*FetchResult, error) {
	repo := s.rm.Entries(s.db)
	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	callerID, ok, err := s.gate.Identity(ctx, token)
	if err != nil {
		return nil, err
	}
	if !entry.IsPublic && (!ok || callerID != entry.OwnerID) {
		return nil, common.ErrorNotFound
	}

	if entry.Kind == models.KindFolder {
		return nil, common.ErrorNoContent
	}

	location := entry.StoragePath
	if size != "" {
		if _, ok := sizeVariants[size]; !ok {
			return nil, common.ErrorInvalidSizeVariant
		}
		// the worker writes variants next to the original
		location = location + "_" + size
	}

	exists, err := s.blobs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("error checking payload: %w", err)
	}
	if !exists {
		return nil, common.ErrorNotFound
	}

	content, err := s.blobs.ReadStream(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("error opening payload: %w", err)
	}

	contentType := mime.TypeByExtension(path.Ext(entry.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &FetchResult{Content: content, ContentType: contentType}, nil
}

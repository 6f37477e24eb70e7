package models

import "time"

// EntryKind is the kind of a file system entry.
type EntryKind string

const (
	KindFolder EntryKind = "folder"
	KindFile   EntryKind = "file"
	KindImage  EntryKind = "image"
)

// Valid reports whether k is one of the recognized kinds.
func (k EntryKind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// HasContent reports whether entries of this kind carry payload bytes.
// Folders never do.
func (k EntryKind) HasContent() bool {
	return k == KindFile || k == KindImage
}

// RootSentinel is the stable zero-value a root parent reference serializes
// to. The internal representation never compares against this literal;
// callers parse it into a ParentRef at the boundary.
const RootSentinel = "0"

// ParentRef is a tagged reference to an entry's parent: either the root of
// the owner's namespace or another entry's ID.
type ParentRef struct {
	id string
}

// RootParent returns the reference to the namespace root.
func RootParent() ParentRef {
	return ParentRef{}
}

// ParentOf returns a reference to the folder with the given ID.
func ParentOf(id string) ParentRef {
	return ParentRef{id: id}
}

// ParseParentRef converts a caller-supplied parent field into a ParentRef.
// An empty string and the root sentinel both mean the root.
func ParseParentRef(s string) ParentRef {
	if s == "" || s == RootSentinel {
		return RootParent()
	}
	return ParentRef{id: s}
}

func (p ParentRef) IsRoot() bool {
	return p.id == ""
}

// ID returns the referenced entry ID; ok is false for the root.
func (p ParentRef) ID() (string, bool) {
	return p.id, p.id != ""
}

// Sentinel returns the serialized form: the entry ID, or RootSentinel for
// the root.
func (p ParentRef) Sentinel() string {
	if p.id == "" {
		return RootSentinel
	}
	return p.id
}

// FileEntry is a node of the hierarchical namespace: a folder, a plain
// file, or an image. OwnerID and Parent are fixed at creation time; only
// IsPublic is mutable afterwards.
type FileEntry struct {
	ID          string
	OwnerID     string
	Name        string
	Kind        EntryKind
	IsPublic    bool
	Parent      ParentRef
	StoragePath string
	CreatedAt   time.Time
}

// EntryView is the outward shape of a FileEntry: a uniform id field, the
// root parent normalized to the stable sentinel, and no storage location.
type EntryView struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Kind     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

func (e *FileEntry) View() *EntryView {
	return &EntryView{
		ID:       e.ID,
		UserID:   e.OwnerID,
		Name:     e.Name,
		Kind:     string(e.Kind),
		IsPublic: e.IsPublic,
		ParentID: e.Parent.Sentinel(),
	}
}

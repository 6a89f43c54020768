// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yomira-cms/internal/platform/dberr"
	"github.com/taibuivan/yomira-cms/pkg/inflect"
	"github.com/taibuivan/yomira-cms/pkg/slug"
	"github.com/taibuivan/yomira-cms/pkg/uuid"
)

// MemoryGroupRepository is an in-memory [GroupRepository] for tests and local runs.
type MemoryGroupRepository struct {
	mu     sync.RWMutex
	byName map[string]*Group
}

// NewMemoryGroupRepository creates an empty in-memory group store.
func NewMemoryGroupRepository() *MemoryGroupRepository {
	return &MemoryGroupRepository{byName: make(map[string]*Group)}
}

// FindByName retrieves a group by name.
func (repository *MemoryGroupRepository) FindByName(_ context.Context, name string) (*Group, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	group, ok := repository.byName[name]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *group
	return &copied, nil
}

// UpsertByName returns the existing group or stores a new one under the write lock.
func (repository *MemoryGroupRepository) UpsertByName(_ context.Context, name string) (*Group, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	group, ok := repository.byName[name]
	if !ok {
		group = &Group{ID: uuid.New(), Name: name, Slug: slug.From(name), CreatedAt: time.Now().UTC()}
		repository.byName[name] = group
	}
	copied := *group
	return &copied, nil
}

// List returns a page of groups ordered by name.
func (repository *MemoryGroupRepository) List(_ context.Context, limit, offset int) ([]*Group, int, error) {
	repository.mu.RLock()
	groups := make([]*Group, 0, len(repository.byName))
	for _, group := range repository.byName {
		copied := *group
		groups = append(groups, &copied)
	}
	repository.mu.RUnlock()

	slices.SortFunc(groups, func(a, b *Group) int { return strings.Compare(a.Name, b.Name) })

	total := len(groups)
	if offset >= total {
		return []*Group{}, total, nil
	}
	end := min(offset+limit, total)
	return groups[offset:end], total, nil
}

// MemoryAssociationRepository is an in-memory [AssociationRepository].
// Rows keep insertion order so suffix matches return the oldest row first.
type MemoryAssociationRepository struct {
	mu     sync.RWMutex
	rows   []*ContentType
	groups *MemoryGroupRepository
}

// NewMemoryAssociationRepository creates an empty association store. Groups are
// resolved through groups so returned rows carry their Group.
func NewMemoryAssociationRepository(groups *MemoryGroupRepository) *MemoryAssociationRepository {
	return &MemoryAssociationRepository{groups: groups}
}

// FindByNameSuffix returns the oldest row matching candidate exactly or as a namespaced suffix.
func (repository *MemoryAssociationRepository) FindByNameSuffix(ctx context.Context, candidate string) (*ContentType, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, row := range repository.rows {
		if row.Name == candidate || strings.HasSuffix(row.Name, inflect.Separator+candidate) {
			return repository.hydrate(ctx, row), nil
		}
	}
	return nil, dberr.ErrNotFound
}

// FindByName returns the row with exactly this name.
func (repository *MemoryAssociationRepository) FindByName(ctx context.Context, name string) (*ContentType, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, row := range repository.rows {
		if row.Name == name {
			return repository.hydrate(ctx, row), nil
		}
	}
	return nil, dberr.ErrNotFound
}

// Save inserts the row or moves an existing row with the same name to the new group.
func (repository *MemoryAssociationRepository) Save(_ context.Context, contentType *ContentType) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	for _, row := range repository.rows {
		if row.Name == contentType.Name {
			row.GroupID = contentType.GroupID
			row.UpdatedAt = now
			contentType.ID, contentType.CreatedAt, contentType.UpdatedAt = row.ID, row.CreatedAt, now
			return nil
		}
	}

	if contentType.ID == "" {
		contentType.ID = uuid.New()
	}
	contentType.CreatedAt, contentType.UpdatedAt = now, now
	repository.rows = append(repository.rows, &ContentType{
		ID:        contentType.ID,
		Name:      contentType.Name,
		GroupID:   contentType.GroupID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

// List returns every row ordered by name.
func (repository *MemoryAssociationRepository) List(ctx context.Context) ([]*ContentType, error) {
	repository.mu.RLock()
	rows := make([]*ContentType, 0, len(repository.rows))
	for _, row := range repository.rows {
		rows = append(rows, repository.hydrate(ctx, row))
	}
	repository.mu.RUnlock()

	slices.SortFunc(rows, func(a, b *ContentType) int { return strings.Compare(a.Name, b.Name) })
	return rows, nil
}

// hydrate copies a row and attaches its group.
func (repository *MemoryAssociationRepository) hydrate(_ context.Context, row *ContentType) *ContentType {
	copied := &ContentType{
		ID:        row.ID,
		Name:      row.Name,
		GroupID:   row.GroupID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if repository.groups != nil {
		repository.groups.mu.RLock()
		for _, group := range repository.groups.byName {
			if group.ID == row.GroupID {
				g := *group
				copied.Group = &g
				break
			}
		}
		repository.groups.mu.RUnlock()
	}
	return copied
}

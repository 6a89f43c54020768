// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"

	"github.com/taibuivan/yomira-cms/internal/core/model"
)

// # Collaborators

// ModelSource is the read side of the model registry.
type ModelSource interface {
	Lookup(name string) (model.Descriptor, bool)
	All() []model.Descriptor
}

// GroupRepository defines the data access contract for content type groups.
type GroupRepository interface {

	/*
		FindByName retrieves a group by its unique name.

		Returns:
		  - *Group: Hydrated entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindByName(context context.Context, name string) (*Group, error)

	/*
		UpsertByName returns the group called name, creating it when absent.
		Concurrent calls for the same name yield the same group.
	*/
	UpsertByName(context context.Context, name string) (*Group, error)

	// List returns groups ordered by name and the total count.
	List(context context.Context, limit, offset int) ([]*Group, int, error)
}

// AssociationRepository defines the data access contract for persisted
// type-to-group rows. Returned content types carry only persisted fields.
type AssociationRepository interface {

	/*
		FindByNameSuffix returns the oldest row whose name equals candidate or
		ends with "::" + candidate.

		Returns:
		  - error: dberr.ErrNotFound if no row matches
	*/
	FindByNameSuffix(context context.Context, candidate string) (*ContentType, error)

	// FindByName returns the row with exactly this name.
	FindByName(context context.Context, name string) (*ContentType, error)

	// Save inserts the row or updates the group of the row with the same name.
	Save(context context.Context, contentType *ContentType) error

	// List returns every row ordered by name.
	List(context context.Context) ([]*ContentType, error)
}

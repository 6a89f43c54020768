// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-cms/internal/platform/database/schema"
	"github.com/taibuivan/yomira-cms/internal/platform/dberr"
	"github.com/taibuivan/yomira-cms/pkg/slug"
	"github.com/taibuivan/yomira-cms/pkg/uuid"
)

// # Group Store

// PostgresGroupRepository implements [GroupRepository] using pgx.
type PostgresGroupRepository struct {
	db *pgxpool.Pool
}

// NewPostgresGroupRepository constructs a PostgreSQL backed group store.
func NewPostgresGroupRepository(db *pgxpool.Pool) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

var groupColumns = strings.Join(schema.ContentTypeGroup.Columns(), ", ")

// FindByName retrieves a group by its unique name.
func (repository *PostgresGroupRepository) FindByName(context context.Context, name string) (*Group, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		groupColumns, schema.ContentTypeGroup.Table, schema.ContentTypeGroup.Name)

	group := &Group{}
	err := repository.db.QueryRow(context, query, name).Scan(&group.ID, &group.Name, &group.Slug, &group.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_type_group_by_name")
	}
	return group, nil
}

/*
UpsertByName finds or creates a group in one statement.

Description: The no-op DO UPDATE makes RETURNING yield the existing row when
the unique name constraint fires, so concurrent callers converge on one id.
*/
func (repository *PostgresGroupRepository) UpsertByName(context context.Context, name string) (*Group, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.ContentTypeGroup.Table, groupColumns,
		schema.ContentTypeGroup.Name, schema.ContentTypeGroup.Name, schema.ContentTypeGroup.Name,
		groupColumns,
	)

	group := &Group{}
	err := repository.db.QueryRow(context, query, uuid.New(), name, slug.From(name)).
		Scan(&group.ID, &group.Name, &group.Slug, &group.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_content_type_group")
	}
	return group, nil
}

// List returns a page of groups ordered by name with COUNT(*) OVER() as total.
func (repository *PostgresGroupRepository) List(context context.Context, limit, offset int) ([]*Group, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		groupColumns, schema.ContentTypeGroup.Table, schema.ContentTypeGroup.Name)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_content_type_groups")
	}
	defer rows.Close()

	groups := make([]*Group, 0)
	total := 0
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Slug, &group.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_content_type_group")
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_content_type_groups")
	}

	return groups, total, nil
}

// # Association Store

// PostgresAssociationRepository implements [AssociationRepository] using pgx.
type PostgresAssociationRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAssociationRepository constructs a PostgreSQL backed association store.
func NewPostgresAssociationRepository(db *pgxpool.Pool) *PostgresAssociationRepository {
	return &PostgresAssociationRepository{db: db}
}

// associationSelect joins each row with its group.
var associationSelect = fmt.Sprintf(`
	SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
	       g.%s, g.%s, g.%s, g.%s
	FROM %s t
	JOIN %s g ON t.%s = g.%s
`,
	schema.ContentType.ID, schema.ContentType.Name, schema.ContentType.GroupID,
	schema.ContentType.CreatedAt, schema.ContentType.UpdatedAt,
	schema.ContentTypeGroup.ID, schema.ContentTypeGroup.Name, schema.ContentTypeGroup.Slug, schema.ContentTypeGroup.CreatedAt,
	schema.ContentType.Table, schema.ContentTypeGroup.Table,
	schema.ContentType.GroupID, schema.ContentTypeGroup.ID,
)

// FindByNameSuffix matches the exact name or a "::"-delimited suffix, oldest row first.
func (repository *PostgresAssociationRepository) FindByNameSuffix(context context.Context, candidate string) (*ContentType, error) {
	query := associationSelect + fmt.Sprintf(`
		WHERE t.%s = $1 OR right(t.%s, char_length($1) + 2) = '::' || $1
		ORDER BY t.%s ASC, t.%s ASC
		LIMIT 1
	`, schema.ContentType.Name, schema.ContentType.Name, schema.ContentType.CreatedAt, schema.ContentType.ID)

	contentType, err := scanAssociation(repository.db.QueryRow(context, query, candidate))
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_type_by_suffix")
	}
	return contentType, nil
}

// FindByName returns the row with exactly this name.
func (repository *PostgresAssociationRepository) FindByName(context context.Context, name string) (*ContentType, error) {
	query := associationSelect + fmt.Sprintf(`WHERE t.%s = $1`, schema.ContentType.Name)

	contentType, err := scanAssociation(repository.db.QueryRow(context, query, name))
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_type_by_name")
	}
	return contentType, nil
}

// Save upserts the row by name and reads back its persisted identity.
func (repository *PostgresAssociationRepository) Save(context context.Context, contentType *ContentType) error {
	id := contentType.ID
	if id == "" {
		id = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		schema.ContentType.Table, strings.Join(schema.ContentType.Columns(), ", "),
		schema.ContentType.Name, schema.ContentType.GroupID, schema.ContentType.GroupID, schema.ContentType.UpdatedAt,
		schema.ContentType.ID, schema.ContentType.CreatedAt, schema.ContentType.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, id, contentType.Name, contentType.GroupID).
		Scan(&contentType.ID, &contentType.CreatedAt, &contentType.UpdatedAt)
	return dberr.Wrap(err, "save_content_type")
}

// List returns every row ordered by name.
func (repository *PostgresAssociationRepository) List(context context.Context) ([]*ContentType, error) {
	query := associationSelect + fmt.Sprintf(`ORDER BY t.%s ASC`, schema.ContentType.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_content_types")
	}
	defer rows.Close()

	contentTypes := make([]*ContentType, 0)
	for rows.Next() {
		contentType, err := scanAssociation(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_content_type")
		}
		contentTypes = append(contentTypes, contentType)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_content_types")
	}

	return contentTypes, nil
}

func scanAssociation(row pgx.Row) (*ContentType, error) {
	contentType := &ContentType{}
	group := &Group{}
	err := row.Scan(
		&contentType.ID, &contentType.Name, &contentType.GroupID, &contentType.CreatedAt, &contentType.UpdatedAt,
		&group.ID, &group.Name, &group.Slug, &group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	contentType.Group = group
	return contentType, nil
}

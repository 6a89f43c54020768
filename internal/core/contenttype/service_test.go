// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-cms/internal/core/contenttype"
	"github.com/taibuivan/yomira-cms/internal/core/model"
	"github.com/taibuivan/yomira-cms/internal/platform/apperr"
)

type fixture struct {
	service      *contenttype.Service
	registry     *model.Registry
	groups       *contenttype.MemoryGroupRepository
	associations *contenttype.MemoryAssociationRepository
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture builds a service over an empty registry plus descriptors.
func newFixture(t *testing.T, descriptors ...model.Descriptor) *fixture {
	t.Helper()

	registry := model.NewRegistry()
	for _, descriptor := range descriptors {
		require.NoError(t, registry.Register(descriptor))
	}

	groups := contenttype.NewMemoryGroupRepository()
	associations := contenttype.NewMemoryAssociationRepository(groups)

	return &fixture{
		service:      contenttype.NewService(registry, groups, associations, contenttype.Options{}, discardLogger()),
		registry:     registry,
		groups:       groups,
		associations: associations,
	}
}

// newBuiltinFixture builds a service over the built-in CMS types.
func newBuiltinFixture(t *testing.T, descriptors ...model.Descriptor) *fixture {
	t.Helper()
	return newFixture(t, append(model.Builtins(), descriptors...)...)
}

func names(contentTypes []*contenttype.ContentType) []string {
	result := make([]string, 0, len(contentTypes))
	for _, contentType := range contentTypes {
		result = append(result, contentType.Name)
	}
	return result
}

// # Discovery

/*
TestListAvailable_SortedAndUnique checks ordering and the portlet collapse.
*/
func TestListAvailable_SortedAndUnique(t *testing.T) {
	f := newBuiltinFixture(t, model.Descriptor{Name: "Widget", HasContentType: true})

	available := names(f.service.ListAvailable())

	assert.True(t, slices.IsSorted(available))
	assert.Len(t, slices.Compact(slices.Clone(available)), len(available))
	assert.Contains(t, available, model.PortletTypeName)
	assert.Contains(t, available, "Cms::Category")
	assert.Contains(t, available, "Widget")
	assert.NotContains(t, available, "Cms::DynamicPortlet")
	assert.NotContains(t, available, "Cms::LoginPortlet")
}

/*
TestListAvailable_SkipsUnlisted leaves out models that do not opt in.
*/
func TestListAvailable_SkipsUnlisted(t *testing.T) {
	f := newFixture(t, model.Descriptor{Name: "Cms::Attachment"})

	assert.Equal(t, []string{model.PortletTypeName}, names(f.service.ListAvailable()))
}

/*
TestGroupedByModule_Partitions checks that every available type lands in
exactly one bucket.
*/
func TestGroupedByModule_Partitions(t *testing.T) {
	f := newBuiltinFixture(t, model.Descriptor{Name: "Widget", HasContentType: true, Connectable: true})

	available := f.service.ListAvailable()
	modules := f.service.GroupedByModule()

	total := 0
	for module, contentTypes := range modules {
		total += len(contentTypes)
		assert.True(t, slices.IsSorted(names(contentTypes)), module)
		for _, contentType := range contentTypes {
			assert.Equal(t, module, contentType.ModuleName())
		}
	}

	assert.Equal(t, len(available), total)
	assert.Equal(t, []string{"Cms::Category"}, names(modules["categorization"]))
	assert.Equal(t, []string{"Widget"}, names(modules[contenttype.UngroupedModule]))
}

/*
TestListConnectable filters to page-attachable types.
*/
func TestListConnectable(t *testing.T) {
	f := newBuiltinFixture(t)

	connectable := f.service.ListConnectable()
	for _, contentType := range connectable {
		assert.True(t, contentType.Connectable(), contentType.Name)
	}
	assert.NotContains(t, names(connectable), "Cms::Category")
	assert.Contains(t, names(connectable), model.PortletTypeName)
}

/*
TestListOtherConnectables equals connectable without the default.
*/
func TestListOtherConnectables(t *testing.T) {
	f := newBuiltinFixture(t)

	expected := slices.DeleteFunc(names(f.service.ListConnectable()), func(name string) bool {
		return name == "Cms::HtmlBlock"
	})

	assert.Equal(t, expected, names(f.service.ListOtherConnectables()))
	assert.NotContains(t, names(f.service.ListOtherConnectables()), "Cms::HtmlBlock")
}

/*
TestListOtherConnectables_EmptyIsNotNil keeps the JSON encoding an array.
*/
func TestListOtherConnectables_EmptyIsNotNil(t *testing.T) {
	registry := model.NewRegistry()
	groups := contenttype.NewMemoryGroupRepository()
	service := contenttype.NewService(registry, groups, contenttype.NewMemoryAssociationRepository(groups),
		contenttype.Options{DefaultName: model.PortletTypeName}, discardLogger())

	others := service.ListOtherConnectables()
	assert.NotNil(t, others)
	assert.Empty(t, others)
}

/*
TestDefault returns the configured default type.
*/
func TestDefault(t *testing.T) {
	f := newBuiltinFixture(t)

	def := f.service.Default()
	assert.Equal(t, "Cms::HtmlBlock", def.Name)
	assert.Equal(t, "Text", def.DisplayName())
	assert.True(t, def.Resolved())
	assert.False(t, def.Persisted())
}

// # Lookup

/*
TestFindByKey_PersistedAssociation resolves a saved type from its table key.
*/
func TestFindByKey_PersistedAssociation(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	_, err := f.service.Assign(ctx, "Cms::HtmlBlock", "Core")
	require.NoError(t, err)

	for _, key := range []string{"html_blocks", "html_block", "cms_html_blocks", "cms/html_blocks", "HtmlBlock"} {
		t.Run(key, func(t *testing.T) {
			contentType, err := f.service.FindByKey(ctx, key)
			require.NoError(t, err)

			assert.Equal(t, "Cms::HtmlBlock", contentType.Name)
			assert.Equal(t, "html_block", contentType.Key())
			assert.True(t, contentType.Persisted())
			require.NotNil(t, contentType.Group)
			assert.Equal(t, "Core", contentType.Group.Name)
		})
	}
}

/*
TestFindByKey_NamespaceRetry finds a row stored without the core namespace.
*/
func TestFindByKey_NamespaceRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.Descriptor{Name: "HtmlBlock", HasContentType: true, Connectable: true})

	_, err := f.service.Assign(ctx, "HtmlBlock", "Core")
	require.NoError(t, err)

	plain, err := f.service.FindByKey(ctx, "html_blocks")
	require.NoError(t, err)

	namespaced, err := f.service.FindByKey(ctx, "cms_html_blocks")
	require.NoError(t, err)

	assert.Equal(t, plain.ID, namespaced.ID)
	assert.Equal(t, "HtmlBlock", namespaced.Name)
}

/*
TestFindByKey_NamespaceWordInName reaches types whose unqualified name starts
with the core namespace word.
*/
func TestFindByKey_NamespaceWordInName(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t,
		model.Descriptor{Name: "CmsArticle", HasContentType: true, Connectable: true},
		model.Descriptor{Name: "CmsBanner", HasContentType: true, Connectable: true, Portlet: true},
	)

	name, err := f.service.ResolveName("cms_articles")
	require.NoError(t, err)
	assert.Equal(t, "CmsArticle", name)

	assigned, err := f.service.AssignByKey(ctx, "cms_articles", "Core")
	require.NoError(t, err)
	assert.Equal(t, "CmsArticle", assigned.Name)

	found, err := f.service.FindByKey(ctx, assigned.Key()+"s")
	require.NoError(t, err)
	assert.Equal(t, assigned.ID, found.ID)
	assert.Equal(t, "cms_article", found.Key())

	portlet, err := f.service.FindByKey(ctx, "cms_banners")
	require.NoError(t, err)
	assert.Equal(t, "CmsBanner", portlet.Name)
	assert.True(t, portlet.Frozen())

	// The namespaced reading still wins when both exist.
	html, err := f.service.FindByKey(ctx, "cms_html_blocks")
	assert.ErrorIs(t, err, contenttype.ErrNotConnectable)
	assert.Nil(t, html)
}

/*
TestFindByKey_Portlet synthesises a frozen type bound to the core group.
*/
func TestFindByKey_Portlet(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	contentType, err := f.service.FindByKey(ctx, "dynamic_portlets")
	require.NoError(t, err)
	assert.Equal(t, "Cms::DynamicPortlet", contentType.Name)
	assert.True(t, contentType.Frozen())
	assert.False(t, contentType.Persisted())
	assert.Nil(t, contentType.Group)
	assert.Equal(t, "portlets", contentType.ContentBlockTypeForList())

	core, err := f.groups.UpsertByName(ctx, "Core")
	require.NoError(t, err)

	contentType, err = f.service.FindByKey(ctx, "dynamic_portlets")
	require.NoError(t, err)
	require.NotNil(t, contentType.Group)
	assert.Equal(t, core.ID, contentType.GroupID)

	err = f.service.Save(ctx, contentType)
	assert.ErrorIs(t, err, contenttype.ErrFrozen)
	assert.ErrorIs(t, f.service.SetGroupByName(ctx, contentType, "Other"), contenttype.ErrFrozen)
}

/*
TestFindByKey_Errors covers the non-resolving outcomes.
*/
func TestFindByKey_Errors(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t, model.Descriptor{Name: "Widget", HasContentType: true})

	_, err := f.service.FindByKey(ctx, "widgets")
	assert.ErrorIs(t, err, contenttype.ErrNotConnectable)

	_, err = f.service.FindByKey(ctx, "gizmos")
	require.ErrorIs(t, err, contenttype.ErrTypeNotFound)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TYPE_NOT_FOUND", ae.Code)
	assert.Contains(t, ae.Message, "gizmos")

	// A registered non-portlet without an association is not retried.
	_, err = f.service.FindByKey(ctx, "cms_categories")
	assert.ErrorIs(t, err, contenttype.ErrNotConnectable)
}

/*
TestFindByKey_UnregisteredModel reports a missing model as not found, not as non-connectable.
*/
func TestFindByKey_UnregisteredModel(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	_, err := f.service.FindByKey(ctx, "widgets")
	require.ErrorIs(t, err, contenttype.ErrTypeNotFound)
	assert.NotErrorIs(t, err, contenttype.ErrNotConnectable)
}

type failingAssociations struct {
	contenttype.AssociationRepository
	err error
}

func (failing failingAssociations) FindByNameSuffix(context.Context, string) (*contenttype.ContentType, error) {
	return nil, failing.err
}

/*
TestFindByKey_StoreErrorPropagates does not mask storage failures.
*/
func TestFindByKey_StoreErrorPropagates(t *testing.T) {
	registry := model.NewRegistry()
	registry.MustRegister(model.Builtins()...)

	storeErr := errors.New("connection refused")
	groups := contenttype.NewMemoryGroupRepository()
	service := contenttype.NewService(registry, groups, failingAssociations{err: storeErr}, contenttype.Options{}, discardLogger())

	_, err := service.FindByKey(context.Background(), "cms_html_blocks")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, contenttype.ErrTypeNotFound)
}

/*
TestResolveName maps keys to registered model names.
*/
func TestResolveName(t *testing.T) {
	f := newBuiltinFixture(t, model.Descriptor{Name: "Widget", HasContentType: true})

	tests := []struct {
		key  string
		want string
	}{
		{"html_blocks", "Cms::HtmlBlock"},
		{"cms_html_blocks", "Cms::HtmlBlock"},
		{"widgets", "Widget"},
		{"cms_widgets", "Widget"},
		{"categories", "Cms::Category"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			name, err := f.service.ResolveName(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}

	_, err := f.service.ResolveName("gizmos")
	assert.ErrorIs(t, err, contenttype.ErrTypeNotFound)
}

// # Grouping

/*
TestSetGroupByName_Idempotent reuses the group on repeated calls.
*/
func TestSetGroupByName_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	first := f.service.Default()
	second := f.service.Default()

	require.NoError(t, f.service.SetGroupByName(ctx, first, "Core"))
	require.NoError(t, f.service.SetGroupByName(ctx, second, "Core"))

	assert.Equal(t, first.GroupID, second.GroupID)
	assert.Equal(t, "core", first.Group.Slug)

	_, total, err := f.service.Groups(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

/*
TestSetGroupByName_Empty leaves the type untouched.
*/
func TestSetGroupByName_Empty(t *testing.T) {
	f := newBuiltinFixture(t)

	contentType := f.service.Default()
	require.NoError(t, f.service.SetGroupByName(context.Background(), contentType, ""))
	assert.Nil(t, contentType.Group)
}

/*
TestSave_Validation covers the failure paths of Save and Assign.
*/
func TestSave_Validation(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	err := f.service.Save(ctx, f.service.Default())
	assert.ErrorIs(t, err, contenttype.ErrGroupRequired)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, contenttype.FieldGroupName, ae.Details[0].Field)

	_, err = f.service.Assign(ctx, "Cms::Missing", "Core")
	assert.ErrorIs(t, err, contenttype.ErrTypeNotFound)

	_, err = f.service.Assign(ctx, "Cms::HtmlBlock", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = f.service.Assign(ctx, "Cms::HtmlBlock", strings.Repeat("g", 101))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestAssign_MovesBetweenGroups updates the existing row instead of adding one.
*/
func TestAssign_MovesBetweenGroups(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	first, err := f.service.Assign(ctx, "Cms::FileBlock", "Core")
	require.NoError(t, err)

	second, err := f.service.Assign(ctx, "Cms::FileBlock", "Media")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := f.service.Named(ctx, "Cms::FileBlock")
	require.NoError(t, err)
	assert.Equal(t, "Media", stored.Group.Name)

	listed, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cms/file_block"}, listed)

	_, err = f.service.Named(ctx, "Cms::ImageBlock")
	assert.ErrorIs(t, err, contenttype.ErrTypeNotFound)
}

/*
TestAssignByKey resolves the key before assigning.
*/
func TestAssignByKey(t *testing.T) {
	ctx := context.Background()
	f := newBuiltinFixture(t)

	contentType, err := f.service.AssignByKey(ctx, "image_blocks", "Media")
	require.NoError(t, err)
	assert.Equal(t, "Cms::ImageBlock", contentType.Name)
	assert.True(t, contentType.Persisted())

	_, err = f.service.AssignByKey(ctx, "gizmos", "Media")
	assert.ErrorIs(t, err, contenttype.ErrTypeNotFound)
}

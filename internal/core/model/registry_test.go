// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-cms/internal/core/model"
)

/*
TestNewRegistry_HasPortletBase verifies the built-in portlet base is always present.
*/
func TestNewRegistry_HasPortletBase(t *testing.T) {
	registry := model.NewRegistry()

	portlet, ok := registry.Lookup(model.PortletTypeName)
	require.True(t, ok)
	assert.True(t, portlet.IsPortletBase())
	assert.True(t, portlet.Listed())
	assert.Equal(t, 1, registry.Len())
}

/*
TestRegister covers idempotent, conflicting and invalid registrations.
*/
func TestRegister(t *testing.T) {
	registry := model.NewRegistry()
	block := model.Descriptor{Name: "ThingBlock", HasContentType: true, Module: "things"}

	require.NoError(t, registry.Register(block))
	require.NoError(t, registry.Register(block), "identical re-registration is a no-op")

	conflicting := block
	conflicting.Connectable = true
	assert.ErrorIs(t, registry.Register(conflicting), model.ErrDuplicate)

	assert.ErrorIs(t, registry.Register(model.Descriptor{}), model.ErrInvalidName)
	assert.ErrorIs(t, registry.Register(model.Descriptor{Name: "Cms::"}), model.ErrInvalidName)
	assert.ErrorIs(t, registry.Register(model.Descriptor{Name: "html blocks"}), model.ErrInvalidName)

	assert.Equal(t, 2, registry.Len())
}

/*
TestSeal rejects writes after the registry is sealed.
*/
func TestSeal(t *testing.T) {
	registry := model.NewRegistry()
	registry.Seal()

	assert.ErrorIs(t, registry.Register(model.Descriptor{Name: "Late"}), model.ErrSealed)
	assert.Panics(t, func() { registry.MustRegister(model.Descriptor{Name: "Late"}) })
}

/*
TestAll_SortedByName checks that enumeration is independent of insert order.
*/
func TestAll_SortedByName(t *testing.T) {
	registry := model.NewRegistry()
	registry.MustRegister(
		model.Descriptor{Name: "Zebra"},
		model.Descriptor{Name: "Apple"},
	)

	names := make([]string, 0)
	for _, descriptor := range registry.All() {
		names = append(names, descriptor.Name)
	}

	assert.Equal(t, []string{"Apple", model.PortletTypeName, "Zebra"}, names)
}

/*
TestBuiltins loads the core types and keeps portlet subtypes out of listings.
*/
func TestBuiltins(t *testing.T) {
	registry := model.NewRegistry()
	registry.MustRegister(model.Builtins()...)

	html, ok := registry.Lookup("Cms::HtmlBlock")
	require.True(t, ok)
	assert.True(t, html.Listed())

	dynamic, ok := registry.Lookup("Cms::DynamicPortlet")
	require.True(t, ok)
	assert.True(t, dynamic.IsPortletSubtype())
	assert.False(t, dynamic.Listed())
}

/*
TestLoadManifest decodes YAML declarations including bare columns.
*/
func TestLoadManifest(t *testing.T) {
	doc := `
types:
  - name: ThingBlock
    content_type: true
    module: things
    connectable: true
    columns_for_index:
      - method: weight
      - label: Name
        method: name
        order: name
`
	manifest, err := model.LoadManifest(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, manifest.Types, 1)

	thing := manifest.Types[0]
	assert.Equal(t, "ThingBlock", thing.Name)
	assert.True(t, thing.Connectable)
	require.Len(t, thing.ColumnsForIndex, 2)
	assert.True(t, thing.ColumnsForIndex[0].IsBare())
	assert.False(t, thing.ColumnsForIndex[1].IsBare())
}

/*
TestLoadManifest_UnknownField rejects typos in manifests.
*/
func TestLoadManifest_UnknownField(t *testing.T) {
	_, err := model.LoadManifest(strings.NewReader("types:\n  - name: X\n    connectible: true\n"))
	assert.Error(t, err)
}

/*
TestRegisterManifestFile registers the manifest types from disk.
*/
func TestRegisterManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: Widget\n"), 0o600))

	registry := model.NewRegistry()
	count, err := model.RegisterManifestFile(registry, path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, ok := registry.Lookup("Widget")
	assert.True(t, ok)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-cms/internal/core/contenttype"
	"github.com/taibuivan/yomira-cms/internal/platform/dberr"
)

/*
TestMemoryGroupRepository_ConcurrentUpsert yields one group per name.
*/
func TestMemoryGroupRepository_ConcurrentUpsert(t *testing.T) {
	ctx := context.Background()
	repository := contenttype.NewMemoryGroupRepository()

	ids := make([]string, 16)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			group, err := repository.UpsertByName(ctx, "Core")
			if err == nil {
				ids[i] = group.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	_, err := repository.FindByName(ctx, "Missing")
	assert.True(t, dberr.IsNotFound(err))
}

/*
TestMemoryGroupRepository_List pages in name order.
*/
func TestMemoryGroupRepository_List(t *testing.T) {
	ctx := context.Background()
	repository := contenttype.NewMemoryGroupRepository()
	for _, name := range []string{"Media", "Core", "Layout"} {
		_, err := repository.UpsertByName(ctx, name)
		require.NoError(t, err)
	}

	groups, total, err := repository.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, groups, 2)
	assert.Equal(t, "Core", groups[0].Name)
	assert.Equal(t, "Layout", groups[1].Name)

	groups, _, err = repository.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

/*
TestMemoryAssociationRepository_SuffixMatch returns the oldest matching row.
*/
func TestMemoryAssociationRepository_SuffixMatch(t *testing.T) {
	ctx := context.Background()
	groups := contenttype.NewMemoryGroupRepository()
	repository := contenttype.NewMemoryAssociationRepository(groups)

	core, err := groups.UpsertByName(ctx, "Core")
	require.NoError(t, err)

	for _, name := range []string{"Shop::Banner", "Cms::Banner", "MegaBanner"} {
		require.NoError(t, repository.Save(ctx, &contenttype.ContentType{Name: name, GroupID: core.ID}))
	}

	found, err := repository.FindByNameSuffix(ctx, "Banner")
	require.NoError(t, err)
	assert.Equal(t, "Shop::Banner", found.Name)
	require.NotNil(t, found.Group)
	assert.Equal(t, "Core", found.Group.Name)

	found, err = repository.FindByNameSuffix(ctx, "Cms::Banner")
	require.NoError(t, err)
	assert.Equal(t, "Cms::Banner", found.Name)

	_, err = repository.FindByNameSuffix(ctx, "Mega")
	assert.True(t, dberr.IsNotFound(err))

	rows, err := repository.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cms::Banner", rows[0].Name)
}

/*
TestCacheKey namespaces suffix lookups.
*/
func TestCacheKey(t *testing.T) {
	assert.Equal(t, "cms:content_type:suffix:HtmlBlock", contenttype.CacheKey("HtmlBlock"))
}

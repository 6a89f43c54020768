// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-cms/internal/core/contenttype"
	"github.com/taibuivan/yomira-cms/internal/platform/dberr"
)

/*
TestCachedAssociationRepository_RedisDown falls through to the wrapped store.
*/
func TestCachedAssociationRepository_RedisDown(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	groups := contenttype.NewMemoryGroupRepository()
	core, err := groups.UpsertByName(ctx, "Core")
	require.NoError(t, err)

	repository := contenttype.NewCachedAssociationRepository(
		contenttype.NewMemoryAssociationRepository(groups), client, time.Minute, discardLogger())

	require.NoError(t, repository.Save(ctx, &contenttype.ContentType{Name: "Cms::HtmlBlock", GroupID: core.ID}))

	found, err := repository.FindByNameSuffix(ctx, "HtmlBlock")
	require.NoError(t, err)
	assert.Equal(t, "Cms::HtmlBlock", found.Name)

	_, err = repository.FindByNameSuffix(ctx, "ImageBlock")
	assert.True(t, dberr.IsNotFound(err))

	names, err := repository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

/*
TestCachedAssociationRepository_HitAndInvalidate serves repeat lookups from
Redis and drops them when an association is saved.
*/
func TestCachedAssociationRepository_HitAndInvalidate(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	groups := contenttype.NewMemoryGroupRepository()
	core, err := groups.UpsertByName(ctx, "Core")
	require.NoError(t, err)
	media, err := groups.UpsertByName(ctx, "Media")
	require.NoError(t, err)

	backing := contenttype.NewMemoryAssociationRepository(groups)
	repository := contenttype.NewCachedAssociationRepository(backing, client, time.Minute, discardLogger())

	require.NoError(t, repository.Save(ctx, &contenttype.ContentType{Name: "Cms::HtmlBlock", GroupID: core.ID}))

	// 1. Miss populates the cache
	first, err := repository.FindByNameSuffix(ctx, "HtmlBlock")
	require.NoError(t, err)
	assert.True(t, server.Exists(contenttype.CacheKey("HtmlBlock")))
	assert.Equal(t, time.Minute, server.TTL(contenttype.CacheKey("HtmlBlock")))

	// 2. A write behind the cache's back is not visible: the hit comes from Redis
	require.NoError(t, backing.Save(ctx, &contenttype.ContentType{Name: "Cms::HtmlBlock", GroupID: media.ID}))

	hit, err := repository.FindByNameSuffix(ctx, "HtmlBlock")
	require.NoError(t, err)
	assert.Equal(t, first.ID, hit.ID)
	assert.Equal(t, core.ID, hit.GroupID)
	require.NotNil(t, hit.Group)
	assert.Equal(t, "Core", hit.Group.Name)
	assert.True(t, first.CreatedAt.Equal(hit.CreatedAt))
	assert.True(t, first.UpdatedAt.Equal(hit.UpdatedAt))

	// 3. Saving through the cache invalidates every cached lookup
	require.NoError(t, repository.Save(ctx, &contenttype.ContentType{Name: "Cms::HtmlBlock", GroupID: media.ID}))
	assert.False(t, server.Exists(contenttype.CacheKey("HtmlBlock")))

	fresh, err := repository.FindByNameSuffix(ctx, "HtmlBlock")
	require.NoError(t, err)
	assert.Equal(t, media.ID, fresh.GroupID)
	require.NotNil(t, fresh.Group)
	assert.Equal(t, "Media", fresh.Group.Name)

	// 4. Not-found results are never cached
	_, err = repository.FindByNameSuffix(ctx, "ImageBlock")
	assert.True(t, dberr.IsNotFound(err))
	assert.False(t, server.Exists(contenttype.CacheKey("ImageBlock")))
}

/*
TestCachedAssociationRepository_CorruptEntry falls back to the store.
*/
func TestCachedAssociationRepository_CorruptEntry(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	groups := contenttype.NewMemoryGroupRepository()
	core, err := groups.UpsertByName(ctx, "Core")
	require.NoError(t, err)

	repository := contenttype.NewCachedAssociationRepository(
		contenttype.NewMemoryAssociationRepository(groups), client, time.Minute, discardLogger())
	require.NoError(t, repository.Save(ctx, &contenttype.ContentType{Name: "Cms::FileBlock", GroupID: core.ID}))

	require.NoError(t, server.Set(contenttype.CacheKey("FileBlock"), "{not json"))

	found, err := repository.FindByNameSuffix(ctx, "FileBlock")
	require.NoError(t, err)
	assert.Equal(t, "Cms::FileBlock", found.Name)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-cms/internal/api"
	"github.com/taibuivan/yomira-cms/internal/core/contenttype"
	"github.com/taibuivan/yomira-cms/internal/core/model"
	"github.com/taibuivan/yomira-cms/internal/platform/config"
	"github.com/taibuivan/yomira-cms/internal/platform/constants"
	"github.com/taibuivan/yomira-cms/internal/platform/sec"
)

type denyVerifier struct{}

func (denyVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("denied")
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := model.NewRegistry()
	registry.MustRegister(model.Builtins()...)
	registry.Seal()

	groups := contenttype.NewMemoryGroupRepository()
	service := contenttype.NewService(registry, groups, contenttype.NewMemoryAssociationRepository(groups), contenttype.Options{}, logger)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, logger, denyVerifier{}, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		ContentType: contenttype.NewHandler(service),
	})
	return server.Handler()
}

func get(t *testing.T, handler http.Handler, path string) (int, map[string]any) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

/*
TestServer_Routes mounts the registry under the versioned prefix.
*/
func TestServer_Routes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	status, envelope := get(t, handler, "/api/v1/content-types/default")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cms::HtmlBlock", envelope[constants.FieldData].(map[string]any)["name"])

	status, _ = get(t, handler, "/api/v1/content-type-groups")
	assert.Equal(t, http.StatusOK, status)

	status, _ = get(t, handler, "/health")
	assert.Equal(t, http.StatusOK, status)
}

/*
TestReadiness reports degraded dependencies with 503.
*/
func TestReadiness(t *testing.T) {
	healthy := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	})
	status, envelope := get(t, healthy, "/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", envelope[constants.FieldData].(map[string]any)[constants.FieldStatus])

	degraded := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis down") },
	})
	status, envelope = get(t, degraded, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", envelope[constants.FieldData].(map[string]any)[constants.FieldStatus])
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-cms/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-cms/internal/platform/request"
	"github.com/taibuivan/yomira-cms/internal/platform/respond"
	"github.com/taibuivan/yomira-cms/internal/platform/sec"
	"github.com/taibuivan/yomira-cms/pkg/pagination"
	"github.com/taibuivan/yomira-cms/pkg/query"
	"github.com/taibuivan/yomira-cms/pkg/slice"
)

// # HTTP Handler

// Handler exposes the registry over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content type [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const queryModule = "module"

// assignGroupRequest is the body of the group assignment endpoint.
type assignGroupRequest struct {
	GroupName string `json:"group_name"`
}

// RegisterRoutes mounts the content type endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAvailable)
	router.Get("/connectable", handler.listConnectable)
	router.Get("/other-connectables", handler.listOtherConnectables)
	router.Get("/by-module", handler.groupedByModule)
	router.Get("/default", handler.getDefault)
	router.Get("/associations", handler.listAssociations)
	router.Get("/{key}", handler.findByKey)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Put("/{key}/group", handler.assignGroup)
}

// RegisterGroupRoutes mounts the group listing endpoints on router.
func (handler *Handler) RegisterGroupRoutes(router chi.Router) {
	router.Get("/", handler.listGroups)
}

// listAvailable accepts an optional "module" filter, e.g. ?module=core,editorial.
func (handler *Handler) listAvailable(writer http.ResponseWriter, request *http.Request) {
	available := handler.service.ListAvailable()

	if modules := query.StringSlice(request.URL.Query().Get(queryModule)); len(modules) > 0 {
		available = slice.Filter(available, func(contentType *ContentType) bool {
			return slices.Contains(modules, contentType.ModuleName())
		})
	}
	respond.OK(writer, available)
}

func (handler *Handler) listConnectable(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.ListConnectable())
}

func (handler *Handler) listOtherConnectables(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.ListOtherConnectables())
}

func (handler *Handler) groupedByModule(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.GroupedByModule())
}

func (handler *Handler) getDefault(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.Default())
}

func (handler *Handler) listAssociations(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, names)
}

func (handler *Handler) findByKey(writer http.ResponseWriter, request *http.Request) {
	contentType, err := handler.service.FindByKey(request.Context(), requestutil.Param(request, FieldKey))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contentType)
}

func (handler *Handler) assignGroup(writer http.ResponseWriter, request *http.Request) {
	var body assignGroupRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType, err := handler.service.AssignByKey(request.Context(), requestutil.Param(request, FieldKey), body.GroupName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contentType)
}

func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	groups, total, err := handler.service.Groups(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, groups, pagination.NewMeta(params.Page, params.Limit, total))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/yomira-cms/internal/core/model"
	"github.com/taibuivan/yomira-cms/internal/platform/dberr"
	"github.com/taibuivan/yomira-cms/internal/platform/validate"
	"github.com/taibuivan/yomira-cms/pkg/inflect"
	"github.com/taibuivan/yomira-cms/pkg/slice"
)

// # Service Layer

// Options configures the registry defaults.
type Options struct {
	// DefaultName is the type most frequently added to pages.
	DefaultName string
	// CoreGroupName is the group portlet lookups are bound to.
	CoreGroupName string
	// CoreNamespace prefixes the CMS's own types ("Cms::HtmlBlock").
	CoreNamespace string
}

func (options Options) withDefaults() Options {
	if options.DefaultName == "" {
		options.DefaultName = "Cms::HtmlBlock"
	}
	if options.CoreGroupName == "" {
		options.CoreGroupName = "Core"
	}
	if options.CoreNamespace == "" {
		options.CoreNamespace = "Cms"
	}
	return options
}

// Service is the content type registry. It synthesises content types from the
// model registry and overlays the persisted group associations.
//
// # Concurrency
//
// Service is safe for concurrent use provided its collaborators are.
type Service struct {
	models       ModelSource
	groups       GroupRepository
	associations AssociationRepository
	options      Options
	logger       *slog.Logger
}

// NewService constructs a new content type [Service].
func NewService(models ModelSource, groups GroupRepository, associations AssociationRepository, options Options, logger *slog.Logger) *Service {
	return &Service{
		models:       models,
		groups:       groups,
		associations: associations,
		options:      options.withDefaults(),
		logger:       logger,
	}
}

// # Discovery

/*
ListAvailable returns one content type per listed model type, sorted by name.

Description: Portlet subtypes are represented by the Portlet base, which is
included exactly once even if the model source does not carry it.
*/
func (service *Service) ListAvailable() []*ContentType {
	descriptors := service.models.All()

	seen := make(map[string]struct{}, len(descriptors)+1)
	available := make([]*ContentType, 0, len(descriptors)+1)

	add := func(descriptor model.Descriptor) {
		if _, ok := seen[descriptor.Name]; ok {
			return
		}
		seen[descriptor.Name] = struct{}{}
		available = append(available, service.bind(&ContentType{Name: descriptor.Name}, descriptor, true))
	}

	for _, descriptor := range descriptors {
		if descriptor.Listed() {
			add(descriptor)
		}
	}
	if portlet, ok := service.models.Lookup(model.PortletTypeName); ok {
		add(portlet)
	} else {
		add(model.PortletBase())
	}

	slices.SortFunc(available, func(a, b *ContentType) int {
		return strings.Compare(a.Name, b.Name)
	})
	return available
}

// ListConnectable returns the available types that can be attached to pages.
func (service *Service) ListConnectable() []*ContentType {
	return connectable(service.ListAvailable())
}

// ListOtherConnectables returns the connectable types except the default.
func (service *Service) ListOtherConnectables() []*ContentType {
	return slice.Filter(service.ListConnectable(), func(contentType *ContentType) bool {
		return contentType.Name != service.options.DefaultName
	})
}

// GroupedByModule partitions the available types by module, keeping the
// sorted order within each bucket.
func (service *Service) GroupedByModule() map[string][]*ContentType {
	modules := make(map[string][]*ContentType)
	for _, contentType := range service.ListAvailable() {
		module := contentType.ModuleName()
		modules[module] = append(modules[module], contentType)
	}
	return modules
}

// Default returns the configured default type without enumerating the registry.
func (service *Service) Default() *ContentType {
	return service.build(service.options.DefaultName)
}

// # Lookup

/*
FindByKey resolves a URL key such as "html_blocks" to a content type.

Description: The persisted association wins; otherwise a Portlet-family model
yields a frozen type in the core group. A candidate in the core namespace that
resolves to nothing is retried once without the namespace, then once as the
literal classification of the key.

Returns:
  - *ContentType: the resolved type
  - error: TypeNotFound, NotConnectable, or a store failure
*/
func (service *Service) FindByKey(context context.Context, key string) (*ContentType, error) {
	candidate, literal := service.candidateNames(key)

	contentType, err := service.lookup(context, candidate)
	if errors.Is(err, ErrTypeNotFound) {
		if stripped, ok := service.stripCoreNamespace(candidate); ok {
			service.logger.Debug("content_type_lookup_retry",
				slog.String("key", key),
				slog.String("candidate", candidate),
				slog.String("stripped", stripped),
			)
			contentType, err = service.lookup(context, stripped)
		}
	}

	// "cms_articles" may name CmsArticle rather than Cms::Article.
	if errors.Is(err, ErrTypeNotFound) && literal != candidate {
		service.logger.Debug("content_type_lookup_literal",
			slog.String("key", key),
			slog.String("candidate", literal),
		)
		contentType, err = service.lookup(context, literal)
	}

	if errors.Is(err, ErrTypeNotFound) {
		return nil, TypeNotFound(key)
	}
	if err != nil {
		return nil, err
	}
	return contentType, nil
}

// lookup runs the two tiers for a single candidate name.
func (service *Service) lookup(context context.Context, candidate string) (*ContentType, error) {
	contentType, err := service.tryAssociationStore(context, candidate)
	if err != nil || contentType != nil {
		return contentType, err
	}
	return service.tryDirectResolution(context, candidate)
}

// tryAssociationStore returns (nil, nil) when no persisted row matches.
func (service *Service) tryAssociationStore(context context.Context, candidate string) (*ContentType, error) {
	contentType, err := service.associations.FindByNameSuffix(context, candidate)
	if dberr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return service.resolve(contentType), nil
}

// tryDirectResolution synthesises a frozen type for Portlet-family models.
// Unqualified names are also tried inside the core namespace.
func (service *Service) tryDirectResolution(context context.Context, candidate string) (*ContentType, error) {
	descriptor, ok := service.models.Lookup(candidate)
	if !ok && inflect.Namespace(candidate) == "" {
		descriptor, ok = service.models.Lookup(service.options.CoreNamespace + inflect.Separator + candidate)
	}
	if !ok {
		return nil, TypeNotFound(candidate)
	}
	if !descriptor.Portlet {
		return nil, NotConnectable(descriptor.Name)
	}

	contentType := service.bind(&ContentType{Name: descriptor.Name}, descriptor, true)

	group, err := service.groups.FindByName(context, service.options.CoreGroupName)
	switch {
	case err == nil:
		contentType.Group = group
		contentType.GroupID = group.ID
	case !dberr.IsNotFound(err):
		return nil, err
	}

	contentType.frozen = true
	return contentType, nil
}

// candidateNames normalises a key into a type name. A leading "<namespace>_"
// on the key is read as the core namespace; literal is the classification
// without that split and equals candidate when no split happened.
func (service *Service) candidateNames(key string) (candidate, literal string) {
	table := inflect.Tableize(strings.TrimSpace(key))
	literal = inflect.Classify(table)

	namespace := inflect.Underscore(service.options.CoreNamespace)
	if rest, ok := strings.CutPrefix(table, namespace+"_"); ok && rest != "" {
		return inflect.Classify(namespace + "/" + rest), literal
	}
	return literal, literal
}

func (service *Service) stripCoreNamespace(name string) (string, bool) {
	stripped, ok := strings.CutPrefix(name, service.options.CoreNamespace+inflect.Separator)
	return stripped, ok && stripped != ""
}

// Named returns the persisted association with exactly this name.
func (service *Service) Named(context context.Context, name string) (*ContentType, error) {
	contentType, err := service.associations.FindByName(context, name)
	if dberr.IsNotFound(err) {
		return nil, TypeNotFound(name)
	}
	if err != nil {
		return nil, err
	}
	return service.resolve(contentType), nil
}

// List returns the underscored names of every persisted association.
func (service *Service) List(context context.Context) ([]string, error) {
	contentTypes, err := service.associations.List(context)
	if err != nil {
		return nil, err
	}
	return slice.Map(contentTypes, func(contentType *ContentType) string {
		return inflect.Underscore(contentType.Name)
	}), nil
}

// # Grouping

/*
SetGroupByName binds the type to the group called name, creating the group
when it does not exist. An empty name leaves the type unchanged.
*/
func (service *Service) SetGroupByName(context context.Context, contentType *ContentType, name string) error {
	if contentType.frozen {
		return Frozen(contentType.Name)
	}
	if name == "" {
		return nil
	}

	validator := &validate.Validator{}
	if err := validator.MaxLen(FieldGroupName, name, 100).Err(); err != nil {
		return err
	}

	group, err := service.groups.UpsertByName(context, name)
	if err != nil {
		return err
	}

	contentType.Group = group
	contentType.GroupID = group.ID
	contentType.GroupName = name
	return nil
}

/*
Save persists the type's group association.

Description: GroupName is resolved first; a type that ends up without a group
fails with GroupRequired.
*/
func (service *Service) Save(context context.Context, contentType *ContentType) error {
	if contentType.frozen {
		return Frozen(contentType.Name)
	}
	if _, ok := service.models.Lookup(contentType.Name); !ok {
		return TypeNotFound(contentType.Name)
	}

	if err := service.SetGroupByName(context, contentType, contentType.GroupName); err != nil {
		return err
	}
	if contentType.Group == nil || contentType.GroupID == "" {
		return GroupRequired()
	}

	if err := service.associations.Save(context, contentType); err != nil {
		return err
	}

	service.logger.Info("content_type_group_assigned",
		slog.String("content_type", contentType.Name),
		slog.String("group", contentType.Group.Name),
	)
	return nil
}

// Assign moves the type called name into the group called groupName.
func (service *Service) Assign(context context.Context, name, groupName string) (*ContentType, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).Required(FieldGroupName, groupName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	contentType := service.build(name)
	contentType.GroupName = groupName
	if err := service.Save(context, contentType); err != nil {
		return nil, err
	}
	return contentType, nil
}

// AssignByKey resolves a URL key to a registered model name and assigns it.
func (service *Service) AssignByKey(context context.Context, key, groupName string) (*ContentType, error) {
	name, err := service.ResolveName(key)
	if err != nil {
		return nil, err
	}
	return service.Assign(context, name, groupName)
}

// ResolveName maps a URL key to the name of a registered model. Unqualified
// candidates are also tried inside the core namespace, namespaced ones
// without it, and finally the literal classification of the key.
func (service *Service) ResolveName(key string) (string, error) {
	candidate, literal := service.candidateNames(key)

	names := []string{candidate}
	if inflect.Namespace(candidate) == "" {
		names = append(names, service.options.CoreNamespace+inflect.Separator+candidate)
	} else if stripped, ok := service.stripCoreNamespace(candidate); ok {
		names = append(names, stripped)
	}
	if literal != candidate {
		names = append(names, literal)
	}

	for _, name := range names {
		if _, ok := service.models.Lookup(name); ok {
			return name, nil
		}
	}
	return "", TypeNotFound(key)
}

// Groups returns a page of persisted groups.
func (service *Service) Groups(context context.Context, limit, offset int) ([]*Group, int, error) {
	return service.groups.List(context, limit, offset)
}

// # Binding

// build creates a transient type for name, resolving its model if registered.
func (service *Service) build(name string) *ContentType {
	descriptor, ok := service.models.Lookup(name)
	return service.bind(&ContentType{Name: name}, descriptor, ok)
}

// resolve attaches the model descriptor to a row loaded from a store.
func (service *Service) resolve(contentType *ContentType) *ContentType {
	descriptor, ok := service.models.Lookup(contentType.Name)
	return service.bind(contentType, descriptor, ok)
}

func (service *Service) bind(contentType *ContentType, descriptor model.Descriptor, resolved bool) *ContentType {
	contentType.descriptor = descriptor
	contentType.resolved = resolved
	contentType.coreNamespace = service.options.CoreNamespace
	return contentType
}

func connectable(contentTypes []*ContentType) []*ContentType {
	return slice.Filter(contentTypes, func(contentType *ContentType) bool {
		return contentType.Connectable()
	})
}

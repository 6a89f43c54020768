// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contenttype describes the kinds of content blocks a CMS page can hold.

A [ContentType] binds a registered model type to grouping and presentation
metadata. Instances are built on demand from the model registry; only the
association between a type name and its [Group] is persisted.

# Core Responsibility

  - Discovery: list, filter and group the registered content types ([Service]).
  - Lookup: resolve URL keys such as "html_blocks" to a content type.
  - Grouping: assign a type to a named group, creating the group on demand.
*/
package contenttype

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/yomira-cms/internal/core/model"
	"github.com/taibuivan/yomira-cms/pkg/inflect"
)

// UngroupedModule is the bucket for types that declare no module.
const UngroupedModule = "ungrouped"

// # Core Entities

// Group is a named bucket used to cluster content types in the admin UI.
type Group struct {
	ID        string    `json:"id"` // UUIDv7
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexColumn is one column of the listing page for a content type.
type IndexColumn struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Order  string `json:"order,omitempty"`
}

// ContentType is the metadata overlay for a registered model type.
//
// Derived accessors read the model descriptor the type was bound to. A type
// whose model is not registered still answers every accessor using naming
// conventions only.
type ContentType struct {
	ID        string
	Name      string
	GroupID   string
	Group     *Group
	CreatedAt time.Time
	UpdatedAt time.Time

	// GroupName is assigned by callers and resolved into Group before saving.
	GroupName string

	descriptor    model.Descriptor
	resolved      bool
	coreNamespace string
	frozen        bool
}

// Persisted reports whether the type has a stored association row.
func (ct *ContentType) Persisted() bool {
	return ct.ID != ""
}

// Frozen reports whether the type is immutable. Portlet types synthesised by
// key lookup are frozen.
func (ct *ContentType) Frozen() bool {
	return ct.frozen
}

// Resolved reports whether the type's model is registered.
func (ct *ContentType) Resolved() bool {
	return ct.resolved
}

// # Derived Accessors

// ModuleName returns the module the type is listed under.
func (ct *ContentType) ModuleName() string {
	if ct.descriptor.Module == "" {
		return UngroupedModule
	}
	return ct.descriptor.Module
}

// Key returns the URL-safe element name, e.g. "Cms::HtmlBlock" -> "html_block".
func (ct *ContentType) Key() string {
	if ct.descriptor.FormElementName != "" {
		return ct.descriptor.FormElementName
	}
	return inflect.Underscore(inflect.Demodulize(ct.Name))
}

// Form returns the template used to render the type's form fields.
// Types outside the core namespace are served from the core template tree.
func (ct *ContentType) Form() string {
	form := ct.descriptor.Form
	if form == "" {
		form = inflect.Pluralize(inflect.Underscore(ct.Name)) + "/form"
	}
	if ct.isMainAppModel() {
		form = inflect.Underscore(ct.coreNamespace) + "/" + form
	}
	return form
}

// DisplayName returns the singular label shown to editors.
func (ct *ContentType) DisplayName() string {
	if ct.descriptor.DisplayName != "" {
		return ct.descriptor.DisplayName
	}
	return inflect.Titleize(inflect.Demodulize(ct.Name))
}

// DisplayNamePlural returns the plural label shown to editors.
func (ct *ContentType) DisplayNamePlural() string {
	if ct.descriptor.DisplayNamePlural != "" {
		return ct.descriptor.DisplayNamePlural
	}
	return inflect.Pluralize(ct.DisplayName())
}

// Connectable reports whether instances can be attached to pages.
func (ct *ContentType) Connectable() bool {
	return ct.descriptor.Connectable
}

// ColumnsForIndex returns the columns shown when listing instances.
func (ct *ContentType) ColumnsForIndex() []IndexColumn {
	if len(ct.descriptor.ColumnsForIndex) == 0 {
		return []IndexColumn{
			{Label: "Name", Method: "name", Order: "name"},
			{Label: "Updated On", Method: "updated_on_string", Order: "updated_at"},
		}
	}

	columns := make([]IndexColumn, 0, len(ct.descriptor.ColumnsForIndex))
	for _, column := range ct.descriptor.ColumnsForIndex {
		if column.IsBare() {
			columns = append(columns, IndexColumn{Label: inflect.Humanize(column.Method), Method: column.Method})
			continue
		}
		columns = append(columns, IndexColumn{Label: column.Label, Method: column.Method, Order: column.Order})
	}
	return columns
}

// ContentBlockType returns the plural path segment used for the type's pages.
func (ct *ContentType) ContentBlockType() string {
	return inflect.Pluralize(inflect.Underscore(inflect.Demodulize(ct.Name)))
}

// ContentBlockTypeForList returns the path segment of the listing page. Portlets
// list every portlet together rather than one subtype at a time.
func (ct *ContentType) ContentBlockTypeForList() string {
	if ct.descriptor.ContentBlockTypeForList != "" {
		return ct.descriptor.ContentBlockTypeForList
	}
	return ct.ContentBlockType()
}

func (ct *ContentType) isMainAppModel() bool {
	return ct.coreNamespace != "" && inflect.Namespace(ct.Name) != ct.coreNamespace
}

// # Serialization

type contentTypeView struct {
	ID                      string        `json:"id,omitempty"`
	Name                    string        `json:"name"`
	Key                     string        `json:"key"`
	Module                  string        `json:"module"`
	DisplayName             string        `json:"display_name"`
	DisplayNamePlural       string        `json:"display_name_plural"`
	Form                    string        `json:"form"`
	Connectable             bool          `json:"connectable"`
	ContentBlockType        string        `json:"content_block_type"`
	ContentBlockTypeForList string        `json:"content_block_type_for_list"`
	ColumnsForIndex         []IndexColumn `json:"columns_for_index"`
	Group                   *Group        `json:"group,omitempty"`
}

// MarshalJSON renders the type together with its derived attributes.
func (ct *ContentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentTypeView{
		ID:                      ct.ID,
		Name:                    ct.Name,
		Key:                     ct.Key(),
		Module:                  ct.ModuleName(),
		DisplayName:             ct.DisplayName(),
		DisplayNamePlural:       ct.DisplayNamePlural(),
		Form:                    ct.Form(),
		Connectable:             ct.Connectable(),
		ContentBlockType:        ct.ContentBlockType(),
		ContentBlockTypeForList: ct.ContentBlockTypeForList(),
		ColumnsForIndex:         ct.ColumnsForIndex(),
		Group:                   ct.Group,
	})
}

// # Field Identifiers

const (
	FieldName      = "name"
	FieldGroupName = "group_name"
	FieldKey       = "key"
)

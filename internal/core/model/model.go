// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package model holds the process-wide table of content-bearing model types.

Each model type registers a [Descriptor] at startup. The descriptor states which
capabilities the type has and carries its optional presentation overrides. Once
the application is wired the registry is sealed and only read afterwards.

# Core Responsibility

  - Registration: [Registry.Register] and the package-level [MustRegister] for startup wiring.
  - Lookup: resolve a fully-qualified type name to its descriptor.
  - Manifest: declare application model types in YAML ([LoadManifest]).

The Portlet base type is always present; portlet subtypes register with
Portlet set so lookups can recognise the family.
*/
package model

// # Built-in Types

const (
	// PortletTypeName is the base of the reusable widget family.
	PortletTypeName = "Cms::Portlet"
	// CoreModule is the module the built-in types are listed under.
	CoreModule = "core"
)

// # Capability Descriptor

// Column describes one column shown when listing instances of a type.
//
// A Column with only Method set is a bare column name; its label is derived
// by humanizing the method.
type Column struct {
	Label  string `json:"label"  yaml:"label"`
	Method string `json:"method" yaml:"method"`
	Order  string `json:"order,omitempty" yaml:"order"`
}

// IsBare reports whether the column was declared by name only.
func (c Column) IsBare() bool {
	return c.Label == "" && c.Order == ""
}

// Descriptor is the capability record a model type registers.
//
// Empty override fields mean "not overridden"; callers fall back to naming
// conventions derived from Name.
type Descriptor struct {
	// Name is the fully-qualified type name, e.g. "Cms::HtmlBlock".
	Name string `yaml:"name"`

	// HasContentType opts the type into content type listings.
	HasContentType bool `yaml:"content_type"`

	// Module groups the type in listings. Empty means ungrouped.
	Module string `yaml:"module"`

	// Connectable reports whether instances can be attached to pages.
	Connectable bool `yaml:"connectable"`

	// Portlet marks members of the portlet family (including the base).
	Portlet bool `yaml:"portlet"`

	// Presentation overrides
	DisplayName             string   `yaml:"display_name"`
	DisplayNamePlural       string   `yaml:"display_name_plural"`
	Form                    string   `yaml:"form"`
	FormElementName         string   `yaml:"form_element_name"`
	ContentBlockTypeForList string   `yaml:"content_block_type_for_list"`
	ColumnsForIndex         []Column `yaml:"columns_for_index"`
}

// IsPortletBase reports whether d is the built-in Portlet base type.
func (d Descriptor) IsPortletBase() bool {
	return d.Name == PortletTypeName
}

// IsPortletSubtype reports whether d belongs to the portlet family without
// being its base.
func (d Descriptor) IsPortletSubtype() bool {
	return d.Portlet && !d.IsPortletBase()
}

// Listed reports whether d appears in content type listings. Portlet subtypes
// are represented by the base type only.
func (d Descriptor) Listed() bool {
	return d.HasContentType && !d.IsPortletSubtype()
}

// PortletBase returns the descriptor of the built-in portlet base type.
func PortletBase() Descriptor {
	return Descriptor{
		Name:              PortletTypeName,
		HasContentType:    true,
		Module:            CoreModule,
		Connectable:       true,
		Portlet:           true,
		DisplayName:       "Portlet",
		DisplayNamePlural: "Portlets",
	}
}

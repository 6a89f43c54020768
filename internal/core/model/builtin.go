// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model

// Builtins returns the content-bearing types that ship with the CMS core.
func Builtins() []Descriptor {
	return []Descriptor{
		{
			Name:           "Cms::HtmlBlock",
			HasContentType: true,
			Module:         CoreModule,
			Connectable:    true,
			DisplayName:    "Text",
		},
		{
			Name:           "Cms::FileBlock",
			HasContentType: true,
			Module:         CoreModule,
			Connectable:    true,
			DisplayName:    "File",
			ColumnsForIndex: []Column{
				{Label: "Name", Method: "name", Order: "name"},
				{Method: "path"},
				{Label: "Updated On", Method: "updated_on_string", Order: "updated_at"},
			},
		},
		{
			Name:           "Cms::ImageBlock",
			HasContentType: true,
			Module:         CoreModule,
			Connectable:    true,
			DisplayName:    "Image",
			ColumnsForIndex: []Column{
				{Label: "Name", Method: "name", Order: "name"},
				{Method: "path"},
				{Label: "Updated On", Method: "updated_on_string", Order: "updated_at"},
			},
		},
		{
			Name:           "Cms::Category",
			HasContentType: true,
			Module:         "categorization",
		},
		{
			Name:                    "Cms::DynamicPortlet",
			HasContentType:          true,
			Module:                  CoreModule,
			Connectable:             true,
			Portlet:                 true,
			ContentBlockTypeForList: "portlets",
		},
		{
			Name:                    "Cms::LoginPortlet",
			HasContentType:          true,
			Module:                  CoreModule,
			Connectable:             true,
			Portlet:                 true,
			ContentBlockTypeForList: "portlets",
		},
	}
}

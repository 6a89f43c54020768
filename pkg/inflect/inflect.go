// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package inflect converts between model type names and their URL, table and
// display forms.
//
// # Naming Conventions
//
// Type names are CamelCase segments joined by [Separator] ("Cms::HtmlBlock").
// Their path form is snake_case segments joined by "/" ("cms/html_block").
//
//	Underscore("Cms::HtmlBlock")  // "cms/html_block"
//	Tableize("HtmlBlock")         // "html_blocks"
//	Classify("cms/html_blocks")   // "Cms::HtmlBlock"
//	Titleize("html_block")        // "Html Block"
package inflect

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/huandu/xstrings"
	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator joins namespace segments in a fully-qualified type name.
const Separator = "::"

// Underscore converts a type name into its lower snake_case path form.
// Namespace separators become "/".
func Underscore(name string) string {
	segments := strings.Split(strings.ReplaceAll(name, Separator, "/"), "/")
	for i, segment := range segments {
		segments[i] = strings.ReplaceAll(xstrings.ToSnakeCase(segment), "-", "_")
	}
	return strings.Join(segments, "/")
}

// Camelize converts a snake_case path back to a type name.
func Camelize(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = upperFirst(xstrings.ToCamelCase(segment))
	}
	return strings.Join(segments, Separator)
}

// Pluralize returns the plural form of the last word in s.
func Pluralize(s string) string {
	return inflection.Plural(s)
}

// Singularize returns the singular form of the last word in s.
func Singularize(s string) string {
	return inflection.Singular(s)
}

// Tableize returns the plural snake_case form of a type name or key.
func Tableize(name string) string {
	return Pluralize(Underscore(name))
}

// Classify returns the singular type name for a table-style key.
func Classify(table string) string {
	return Camelize(Singularize(table))
}

// Demodulize removes every namespace segment from a type name.
func Demodulize(name string) string {
	if i := strings.LastIndex(name, Separator); i >= 0 {
		return name[i+len(Separator):]
	}
	return name
}

// Namespace returns the leading namespace segment of name, or "" when there is none.
func Namespace(name string) string {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[:i]
	}
	return ""
}

// Humanize turns a snake_case identifier into a capitalised phrase.
// A trailing "_id" is dropped.
func Humanize(s string) string {
	s = strings.TrimSuffix(Underscore(s), "_id")
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	return upperFirst(s)
}

// Titleize capitalises every word of the humanized form of s.
func Titleize(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(Humanize(s))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

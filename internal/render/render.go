// SPDX-License-Identifier: MPL-2.0

// Package render performs variable substitution into extension-owned
// Dockerfile templates.
//
// Templates use text/template syntax with the hermetic sprig function map
// (no environment, time or randomness access) plus shquote, which quotes a
// value for a POSIX shell. Unknown variables are an error rather than an
// empty expansion, so a typo in a template cannot silently produce a broken
// Dockerfile.
package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"mvdan.cc/sh/v3/syntax"
)

// Template is a parsed extension template.
type Template struct {
	name string
	tmpl *template.Template
}

// Parse parses text as a template called name.
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Funcs(funcMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// Must is like Parse but panics on error. It is meant for package-level
// templates whose text is a compile-time constant.
func Must(name, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Execute renders the template with vars.
func (t *Template) Execute(vars any) (string, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render template %s: %w", t.name, err)
	}
	return sb.String(), nil
}

// Render parses and executes text in one step.
func Render(text string, vars map[string]any) (string, error) {
	t, err := Parse("inline", text)
	if err != nil {
		return "", err
	}
	return t.Execute(vars)
}

// ShellQuote quotes s so that a POSIX shell reads it back as one word.
func ShellQuote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("quote %q: %w", s, err)
	}
	return q, nil
}

func funcMap() template.FuncMap {
	fm := sprig.HermeticTxtFuncMap()
	fm["shquote"] = func(v any) (string, error) {
		return ShellQuote(fmt.Sprint(v))
	}
	return fm
}

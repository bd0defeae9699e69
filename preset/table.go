// Package preset holds the table of build-variant presets: named, ordered
// lists of flags handed to the CMake generator to produce debug/release,
// 32/64-bit, static/dynamic and with/without-LP builds.
//
// A Table is built once from a list of Definitions and is read-only
// afterwards. Every accessor returns a copy, so callers may modify what they
// get back without affecting the table or later lookups. Tables are safe for
// concurrent use.
package preset

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/logger"
)

var (
	// ErrUnknownConfig is returned when a config name is not in the table.
	ErrUnknownConfig = errors.Wrap(errors.ErrNotFound, "unknown config")

	// ErrMalformedConfig is returned when a table cannot be constructed from
	// its definitions. It is a defect in the definitions, not in the lookup.
	ErrMalformedConfig = errors.Wrap(errors.ErrInvalidRequest, "malformed config")
)

// Definition describes how one named flag list is produced.
//
// A literal definition leaves Base empty; its list is Prefix followed by
// Append. A derived definition takes the already-defined list named Base,
// drops its first Skip elements, and produces Prefix + base[Skip:] + Append.
type Definition struct {
	Name   string   `json:"name" yaml:"name" toml:"name"`
	Base   string   `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	Skip   int      `json:"skip,omitempty" yaml:"skip,omitempty" toml:"skip,omitempty"`
	Prefix []string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Append []string `json:"append,omitempty" yaml:"append,omitempty" toml:"append,omitempty"`
}

// Derived reports whether the definition reuses another preset
func (d Definition) Derived() bool {
	return d.Base != ""
}

// String describes the derivation, e.g. "debug32 = [1 flag] + release32[1:]"
func (d Definition) String() string {
	var parts []string
	if len(d.Prefix) > 0 {
		parts = append(parts, countFlags(len(d.Prefix)))
	}
	if d.Derived() {
		if d.Skip > 0 {
			parts = append(parts, d.Base+"["+strconv.Itoa(d.Skip)+":]")
		} else {
			parts = append(parts, d.Base)
		}
	}
	if len(d.Append) > 0 {
		parts = append(parts, countFlags(len(d.Append)))
	}
	return d.Name + " = " + strings.Join(parts, " + ")
}

func (d Definition) clone() Definition {
	d.Prefix = slices.Clone(d.Prefix)
	d.Append = slices.Clone(d.Append)
	return d
}

// Entry is a materialized preset: its name, its flags and how it was built.
type Entry struct {
	Name       string     `json:"name" yaml:"name" toml:"name"`
	Flags      []string   `json:"flags" yaml:"flags" toml:"flags"`
	Definition Definition `json:"definition" yaml:"definition" toml:"definition"`
}

// Table maps config names to flag lists plus the default and debug selectors.
type Table struct {
	flags       map[string][]string
	defs        map[string]Definition
	order       []string
	defaultName string
	debugName   string
}

// Build evaluates defs in order and returns the resulting table.
//
// Derived definitions may only reference names defined earlier in defs.
// Each list is copied when it is built, so no two entries share storage.
// defaultName and debugName must both name entries of the table.
func Build(defs []Definition, defaultName, debugName string) (*Table, error) {
	t := &Table{
		flags: make(map[string][]string, len(defs)),
		defs:  make(map[string]Definition, len(defs)),
		order: make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if err := t.add(def); err != nil {
			return nil, err
		}
	}

	for _, sel := range []struct{ role, name string }{
		{"default", defaultName},
		{"debug", debugName},
	} {
		if _, ok := t.flags[sel.name]; !ok {
			return nil, errors.WithHint(
				errors.Wrapf(ErrMalformedConfig, "%s selector %q is not a defined config", sel.role, sel.name),
				"defined configs: "+strings.Join(t.Names(), ", "),
			)
		}
	}
	t.defaultName = defaultName
	t.debugName = debugName

	return t, nil
}

// MustBuild is like Build but panics if the table cannot be constructed.
// It is meant for tables defined in source, where a failure is a programming error.
func MustBuild(defs []Definition, defaultName, debugName string) *Table {
	t, err := Build(defs, defaultName, debugName)
	if err != nil {
		panic(errors.Wrap(err, "preset table"))
	}
	return t
}

func (t *Table) add(def Definition) error {
	if def.Name == "" {
		return errors.Wrap(ErrMalformedConfig, "definition without a name")
	}
	if _, dup := t.flags[def.Name]; dup {
		return errors.Wrapf(ErrMalformedConfig, "config %q is defined more than once", def.Name)
	}

	var base []string
	if def.Derived() {
		src, ok := t.flags[def.Base]
		if !ok {
			return errors.WithHint(
				errors.Wrapf(ErrMalformedConfig, "config %q: base %q is not defined before it", def.Name, def.Base),
				"derived configs must come after the config they reuse",
			)
		}
		if def.Skip < 0 {
			return errors.Wrapf(ErrMalformedConfig, "config %q: negative skip %d", def.Name, def.Skip)
		}
		if def.Skip > len(src) {
			return errors.WithDetailf(
				errors.Wrapf(ErrMalformedConfig, "config %q: skip %d exceeds length of base %q", def.Name, def.Skip, def.Base),
				"base %q has %d flags", def.Base, len(src),
			)
		}
		base = src[def.Skip:]
	} else if def.Skip != 0 {
		return errors.Wrapf(ErrMalformedConfig, "config %q: skip %d without a base", def.Name, def.Skip)
	}

	flags := make([]string, 0, len(def.Prefix)+len(base)+len(def.Append))
	flags = append(flags, def.Prefix...)
	flags = append(flags, base...)
	flags = append(flags, def.Append...)
	if len(flags) == 0 {
		return errors.Wrapf(ErrMalformedConfig, "config %q has no flags", def.Name)
	}

	t.flags[def.Name] = flags
	t.defs[def.Name] = def.clone()
	t.order = append(t.order, def.Name)

	logger.Debugw("Preset defined",
		logger.FieldConfig, def.Name,
		logger.FieldBase, def.Base,
		logger.FieldSkip, def.Skip,
		logger.FieldFlagCount, len(flags))
	return nil
}

// Flags returns a copy of the flag list for name.
// It fails with ErrUnknownConfig when name is not in the table.
func (t *Table) Flags(name string) ([]string, error) {
	flags, ok := t.flags[name]
	if !ok {
		return nil, t.unknown(name)
	}
	return slices.Clone(flags), nil
}

// Definition returns how the entry called name was built
func (t *Table) Definition(name string) (Definition, error) {
	def, ok := t.defs[name]
	if !ok {
		return Definition{}, t.unknown(name)
	}
	return def.clone(), nil
}

func (t *Table) unknown(name string) error {
	return errors.WithHint(
		errors.Wrapf(ErrUnknownConfig, "config %q", name),
		"valid configs: "+strings.Join(t.Names(), ", "),
	)
}

// Has reports whether name is a config in the table
func (t *Table) Has(name string) bool {
	_, ok := t.flags[name]
	return ok
}

// Names returns all config names, sorted
func (t *Table) Names() []string {
	names := slices.Clone(t.order)
	sort.Strings(names)
	return names
}

// Len returns the number of configs
func (t *Table) Len() int {
	return len(t.order)
}

// DefaultName returns the config used when none is requested
func (t *Table) DefaultName() string {
	return t.defaultName
}

// DebugName returns the config used for debug builds
func (t *Table) DebugName() string {
	return t.debugName
}

// Entries returns every preset in definition order
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		entries = append(entries, Entry{
			Name:       name,
			Flags:      slices.Clone(t.flags[name]),
			Definition: t.defs[name].clone(),
		})
	}
	return entries
}

// Definitions returns the definitions the table was built from, in order
func (t *Table) Definitions() []Definition {
	defs := make([]Definition, 0, len(t.order))
	for _, name := range t.order {
		defs = append(defs, t.defs[name].clone())
	}
	return defs
}

// Overlay returns a new table holding t's entries followed by defs.
// Empty selectors keep t's default and debug names. t is left unchanged.
// Redefining a name already in t is a malformed config.
func (t *Table) Overlay(defs []Definition, defaultName, debugName string) (*Table, error) {
	if defaultName == "" {
		defaultName = t.defaultName
	}
	if debugName == "" {
		debugName = t.debugName
	}
	all := append(t.Definitions(), defs...)
	return Build(all, defaultName, debugName)
}

func countFlags(n int) string {
	if n == 1 {
		return "[1 flag]"
	}
	return "[" + strconv.Itoa(n) + " flags]"
}

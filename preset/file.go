package preset

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/logger"
)

// DefaultFileName is the presets file looked up in the working directory
const DefaultFileName = "buildcfg-presets.toml"

// File is a project presets file layered over the built-in table.
//
//	requires = ">= 0.2.0"
//	default  = "release64lto"
//
//	[[preset]]
//	name   = "release64lto"
//	base   = "release64"
//	append = ["-DUSE_LTO=YES"]
type File struct {
	// Requires is a semver constraint on the buildcfg version
	Requires string      `toml:"requires"`
	Default  string      `toml:"default"`
	Debug    string      `toml:"debug"`
	Presets  []FileEntry `toml:"preset"`
}

// FileEntry is one [[preset]] table.
// Flags is a shell-style shorthand that is split and placed ahead of Append.
type FileEntry struct {
	Name   string   `toml:"name"`
	Base   string   `toml:"base"`
	Skip   int      `toml:"skip"`
	Prefix []string `toml:"prefix"`
	Append []string `toml:"append"`
	Flags  string   `toml:"flags"`
}

// DecodeFile reads a presets file. Unknown keys are rejected.
func DecodeFile(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse presets file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.WithHint(
			errors.Newf("unknown keys in presets file: %s", strings.Join(keys, ", ")),
			"allowed keys: requires, default, debug, [[preset]] name/base/skip/prefix/append/flags",
		)
	}
	return &f, nil
}

// LoadFile reads and decodes the presets file at path
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open presets file %s", path)
	}
	defer fh.Close()

	f, err := DecodeFile(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "presets file %s", path)
	}
	return f, nil
}

// CheckCompatible verifies Requires against toolVersion.
// Development builds ("dev" or empty) skip the check.
func (f *File) CheckCompatible(toolVersion string) error {
	if f.Requires == "" || toolVersion == "" || toolVersion == "dev" {
		return nil
	}

	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid buildcfg version %s", toolVersion)
	}
	constraint, err := semver.NewConstraint(f.Requires)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", f.Requires)
	}
	if !constraint.Check(current) {
		return errors.Wrapf(errors.ErrIncompatible, "presets file requires buildcfg %s, running %s", f.Requires, toolVersion)
	}
	return nil
}

// Definitions converts the file entries into table definitions
func (f *File) Definitions() ([]Definition, error) {
	defs := make([]Definition, 0, len(f.Presets))
	for _, e := range f.Presets {
		def := Definition{
			Name:   e.Name,
			Base:   e.Base,
			Skip:   e.Skip,
			Prefix: e.Prefix,
			Append: e.Append,
		}
		if e.Flags != "" {
			extra, err := SplitFlags(e.Flags)
			if err != nil {
				return nil, errors.Wrapf(err, "preset %q", e.Name)
			}
			def.Append = append(extra, e.Append...)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Apply layers the file over base and returns the combined table.
// base is not modified.
func (f *File) Apply(base *Table, toolVersion string) (*Table, error) {
	if err := f.CheckCompatible(toolVersion); err != nil {
		return nil, err
	}
	defs, err := f.Definitions()
	if err != nil {
		return nil, err
	}

	t, err := base.Overlay(defs, f.Default, f.Debug)
	if err != nil {
		return nil, err
	}

	logger.ComponentLogger("preset.file").Infow("Presets file applied",
		logger.FieldCount, len(defs),
		"default", t.DefaultName(),
		"debug", t.DebugName())
	return t, nil
}

// LoadTable reads the presets file at path and layers it over the built-in table
func LoadTable(path, toolVersion string) (*Table, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := f.Apply(Builtin(), toolVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "presets file %s", path)
	}
	return t, nil
}

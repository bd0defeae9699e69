package preset

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/buildcfg/errors"
)

// BuildTypeVar is the CMake variable selecting the build type
const BuildTypeVar = "CMAKE_BUILD_TYPE"

// Define is a parsed -D<NAME>[:<TYPE>]=<value> generator flag.
type Define struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// String renders the define back into flag form
func (d Define) String() string {
	if d.Type != "" {
		return "-D" + d.Name + ":" + d.Type + "=" + d.Value
	}
	return "-D" + d.Name + "=" + d.Value
}

// ParseDefine splits a -D flag into its parts.
// ok is false for anything that is not a define with a name and an '='.
// The value is kept verbatim, including any quotes.
func ParseDefine(flag string) (Define, bool) {
	rest, found := strings.CutPrefix(flag, "-D")
	if !found {
		return Define{}, false
	}
	lhs, value, found := strings.Cut(rest, "=")
	if !found || lhs == "" {
		return Define{}, false
	}
	name, typ, _ := strings.Cut(lhs, ":")
	if name == "" {
		return Define{}, false
	}
	return Define{Name: name, Type: typ, Value: value}, true
}

// Defines parses every define in flags, in order, skipping other flags
func Defines(flags []string) []Define {
	var defs []Define
	for _, f := range flags {
		if d, ok := ParseDefine(f); ok {
			defs = append(defs, d)
		}
	}
	return defs
}

// Lookup returns the value of the last define of name in flags.
// The generator applies later flags over earlier ones.
func Lookup(flags []string, name string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, d := range Defines(flags) {
		if d.Name == name {
			value, found = d.Value, true
		}
	}
	return value, found
}

// BuildType returns the effective CMAKE_BUILD_TYPE of flags, or "" if unset
func BuildType(flags []string) string {
	v, _ := Lookup(flags, BuildTypeVar)
	return v
}

// CommandLine renders the generator invocation for flags as a single
// shell-quoted string. It only renders; nothing is executed.
func CommandLine(generator, sourceDir, buildDir string, flags []string) string {
	args := make([]string, 0, len(flags)+5)
	args = append(args, generator, "-S", sourceDir, "-B", buildDir)
	args = append(args, flags...)
	return shellquote.Join(args...)
}

// SplitFlags splits a shell-style flags string into individual flags
func SplitFlags(s string) ([]string, error) {
	flags, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "cannot split flags %q: %v", s, err)
	}
	return flags, nil
}

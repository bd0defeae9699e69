package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/buildcfg/errors"
)

func TestBuildDerivation(t *testing.T) {
	defs := []Definition{
		{Name: "base", Prefix: []string{"-DA=1", "-DB=2", "-DC=3"}},
		{Name: "tail", Base: "base", Skip: 2},
		{Name: "wrapped", Base: "base", Skip: 1, Prefix: []string{"-DA=0"}, Append: []string{"-DD=4"}},
		{Name: "whole", Base: "base", Append: []string{"-DE=5"}},
		{Name: "replaced", Base: "base", Skip: 3, Prefix: []string{"-DZ=9"}},
	}

	table, err := Build(defs, "base", "tail")
	require.NoError(t, err)

	tests := []struct {
		name string
		want []string
	}{
		{"base", []string{"-DA=1", "-DB=2", "-DC=3"}},
		{"tail", []string{"-DC=3"}},
		{"wrapped", []string{"-DA=0", "-DB=2", "-DC=3", "-DD=4"}},
		{"whole", []string{"-DA=1", "-DB=2", "-DC=3", "-DE=5"}},
		{"replaced", []string{"-DZ=9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Flags(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMalformed(t *testing.T) {
	base := Definition{Name: "base", Prefix: []string{"-DA=1", "-DB=2"}}

	tests := []struct {
		name    string
		defs    []Definition
		dflt    string
		debug   string
		wantMsg string
	}{
		{
			name:    "skip exceeds base length",
			defs:    []Definition{base, {Name: "x", Base: "base", Skip: 3, Prefix: []string{"-DX=1"}}},
			dflt:    "base",
			debug:   "base",
			wantMsg: `config "x": skip 3 exceeds length of base "base"`,
		},
		{
			name:    "negative skip",
			defs:    []Definition{base, {Name: "x", Base: "base", Skip: -1}},
			dflt:    "base",
			debug:   "base",
			wantMsg: "negative skip",
		},
		{
			name:    "skip without base",
			defs:    []Definition{{Name: "x", Skip: 1, Prefix: []string{"-DX=1"}}},
			dflt:    "x",
			debug:   "x",
			wantMsg: "without a base",
		},
		{
			name:    "forward reference",
			defs:    []Definition{{Name: "x", Base: "base"}, base},
			dflt:    "base",
			debug:   "base",
			wantMsg: `base "base" is not defined before it`,
		},
		{
			name:    "duplicate name",
			defs:    []Definition{base, base},
			dflt:    "base",
			debug:   "base",
			wantMsg: "defined more than once",
		},
		{
			name:    "empty name",
			defs:    []Definition{{Prefix: []string{"-DX=1"}}},
			wantMsg: "without a name",
		},
		{
			name:    "empty list",
			defs:    []Definition{base, {Name: "x", Base: "base", Skip: 2}},
			dflt:    "base",
			debug:   "base",
			wantMsg: `config "x" has no flags`,
		},
		{
			name:    "default selector missing",
			defs:    []Definition{base},
			dflt:    "release32",
			debug:   "base",
			wantMsg: `default selector "release32"`,
		},
		{
			name:    "debug selector missing",
			defs:    []Definition{base},
			dflt:    "base",
			debug:   "debug32",
			wantMsg: `debug selector "debug32"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Build(tt.defs, tt.dflt, tt.debug)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, ErrMalformedConfig)
			assert.True(t, errors.IsInvalidRequestError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBuildSkipExceedsCarriesDetail(t *testing.T) {
	_, err := Build([]Definition{
		{Name: "base", Prefix: []string{"-DA=1"}},
		{Name: "x", Base: "base", Skip: 2, Prefix: []string{"-DX=1"}},
	}, "base", "base")
	require.Error(t, err)
	assert.Contains(t, errors.GetAllDetails(err), `base "base" has 1 flags`)
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild([]Definition{{Name: "x", Base: "missing"}}, "x", "x")
	})
	assert.NotPanics(t, func() {
		MustBuild([]Definition{{Name: "x", Prefix: []string{"-DX=1"}}}, "x", "x")
	})
}

func TestBuildCopiesOnConstruct(t *testing.T) {
	prefix := []string{"-DA=1", "-DB=2"}
	defs := []Definition{
		{Name: "base", Prefix: prefix},
		{Name: "derived", Base: "base", Skip: 1, Append: []string{"-DC=3"}},
	}

	table, err := Build(defs, "base", "derived")
	require.NoError(t, err)

	// Mutating the inputs after construction must not leak into the table.
	prefix[1] = "-DB=changed"
	defs[1].Append[0] = "-DC=changed"

	base, err := table.Flags("base")
	require.NoError(t, err)
	assert.Equal(t, []string{"-DA=1", "-DB=2"}, base)

	derived, err := table.Flags("derived")
	require.NoError(t, err)
	assert.Equal(t, []string{"-DB=2", "-DC=3"}, derived)

	def, err := table.Definition("derived")
	require.NoError(t, err)
	assert.Equal(t, []string{"-DC=3"}, def.Append)
}

func TestFlagsUnknown(t *testing.T) {
	table := MustBuild([]Definition{{Name: "only", Prefix: []string{"-DX=1"}}}, "only", "only")

	_, err := table.Flags("other")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfig)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), `config "other"`)
	assert.Equal(t, []string{"valid configs: only"}, errors.GetAllHints(err))

	_, err = table.Definition("other")
	assert.ErrorIs(t, err, ErrUnknownConfig)
	assert.False(t, table.Has("other"))
	assert.True(t, table.Has("only"))
}

func TestEntriesKeepDefinitionOrder(t *testing.T) {
	entries := Builtin().Entries()
	require.Len(t, entries, 13)
	assert.Equal(t, "minimal", entries[0].Name)
	assert.Equal(t, "release32", entries[1].Name)
	assert.Equal(t, "debug32", entries[2].Name)
	assert.Equal(t, "debug64dynamic", entries[12].Name)

	entries[0].Flags[0] = "mutated"
	flags, err := Flags("minimal")
	require.NoError(t, err)
	assert.Equal(t, FlagRelease, flags[0])
}

func TestOverlay(t *testing.T) {
	base := Builtin()

	overlaid, err := base.Overlay([]Definition{
		{Name: "release64lto", Base: "release64", Append: []string{"-DUSE_LTO=YES"}},
	}, "release64lto", "")
	require.NoError(t, err)

	assert.Equal(t, "release64lto", overlaid.DefaultName())
	assert.Equal(t, "debug32", overlaid.DebugName())
	assert.Equal(t, base.Len()+1, overlaid.Len())

	flags, err := overlaid.Flags("release64lto")
	require.NoError(t, err)
	assert.Equal(t, []string{FlagRelease, FlagAllow64Bit, FlagCXXM64, "-DUSE_LTO=YES"}, flags)

	// The base table is untouched.
	assert.False(t, base.Has("release64lto"))
	assert.Equal(t, "release32", base.DefaultName())
}

func TestOverlayRejectsRedefinition(t *testing.T) {
	_, err := Builtin().Overlay([]Definition{
		{Name: "release32", Prefix: []string{"-DCMAKE_BUILD_TYPE=RelWithDebInfo"}},
	}, "", "")
	assert.ErrorIs(t, err, ErrMalformedConfig)
}

func TestDefinitionString(t *testing.T) {
	tests := []struct {
		def  Definition
		want string
	}{
		{Definition{Name: "minimal", Prefix: []string{"a", "b"}}, "minimal = [2 flags]"},
		{Definition{Name: "release32", Base: "minimal", Append: []string{"a"}}, "release32 = minimal + [1 flag]"},
		{Definition{Name: "debug32", Base: "release32", Skip: 1, Prefix: []string{"a"}}, "debug32 = [1 flag] + release32[1:]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.def.String())
	}
}

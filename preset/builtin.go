package preset

// Selectors for the built-in table.
const (
	DefaultConfig = "release32"
	DebugConfig   = "debug32"
)

// Flags shared by the built-in presets.
const (
	FlagRelease      = "-DCMAKE_BUILD_TYPE=Release"
	FlagDebug        = "-DCMAKE_BUILD_TYPE=Debug"
	FlagNoPlugins    = "-DDISABLE_PLUGINS_BY_DEFAULT=YES"
	FlagRedBlack     = "-DPLUGIN_REDBLACK_ENABLED=YES"
	FlagAllow64Bit   = "-DALLOW_64_BIT=True"
	FlagCXXM64       = "-DCMAKE_CXX_FLAGS='-m64'"
	FlagNoLP         = "-DUSE_LP=NO"
	FlagForceDynamic = "-DFORCE_DYNAMIC_BUILD=YES"
)

// builtinDefinitions returns the presets shipped with buildcfg.
// The slice is fresh on every call.
func builtinDefinitions() []Definition {
	return []Definition{
		// Release build with every plugin disabled.
		{Name: "minimal", Prefix: []string{FlagRelease, FlagNoPlugins}},
		// minimal plus the red-black plugin.
		{Name: "release32", Base: "minimal", Append: []string{FlagRedBlack}},
		// release32 with its leading build-type flag replaced by Debug.
		// Relies on release32 starting with the build type; see DESIGN.md.
		{Name: "debug32", Base: "release32", Skip: 1, Prefix: []string{FlagDebug}},
		{Name: "release32nolp", Prefix: []string{FlagRelease, FlagNoLP}},
		{Name: "debug32nolp", Prefix: []string{FlagDebug, FlagNoLP}},
		{Name: "release64", Prefix: []string{FlagRelease, FlagAllow64Bit, FlagCXXM64}},
		{Name: "debug64", Prefix: []string{FlagDebug, FlagAllow64Bit, FlagCXXM64}},
		{Name: "release64nolp", Prefix: []string{FlagRelease, FlagAllow64Bit, FlagCXXM64, FlagNoLP}},
		{Name: "debug64nolp", Prefix: []string{FlagDebug, FlagAllow64Bit, FlagCXXM64, FlagNoLP}},

		{Name: "release32dynamic", Prefix: []string{FlagRelease, FlagForceDynamic}},
		{Name: "debug32dynamic", Prefix: []string{FlagDebug, FlagForceDynamic}},
		{Name: "release64dynamic", Prefix: []string{FlagRelease, FlagAllow64Bit, FlagCXXM64, FlagForceDynamic}},
		{Name: "debug64dynamic", Prefix: []string{FlagDebug, FlagAllow64Bit, FlagCXXM64, FlagForceDynamic}},
	}
}

// builtin is constructed at package initialization; a malformed
// definition above panics before any caller can observe the table.
var builtin = MustBuild(builtinDefinitions(), DefaultConfig, DebugConfig)

// Builtin returns the table of presets shipped with buildcfg
func Builtin() *Table {
	return builtin
}

// Flags returns a copy of the built-in flag list for name
func Flags(name string) ([]string, error) {
	return builtin.Flags(name)
}

// Names returns the sorted names of the built-in presets
func Names() []string {
	return builtin.Names()
}

// DefaultName returns the built-in default selector
func DefaultName() string {
	return builtin.DefaultName()
}

// DebugName returns the built-in debug selector
func DebugName() string {
	return builtin.DebugName()
}

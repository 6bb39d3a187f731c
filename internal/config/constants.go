package config

// OptionsFileName is the per-project configuration file.
const OptionsFileName = "regionck.yaml"

// OptionsFileNames are all recognized configuration file names, in lookup order.
var OptionsFileNames = []string{"regionck.yaml", "regionck.yml", "regionck.toml"}

// IsTestMode indicates if the program is running under tests.
// Renderers use it to keep output free of terminal escapes.
var IsTestMode = false

// TestModeEnv switches IsTestMode on when set to "1".
const TestModeEnv = "REGIONCK_TEST_MODE"

// Defaults applied by Options.setDefaults
const (
	DefaultExplainDepth = 16
	DefaultColorMode    = ColorAuto
)

// ExportsDriver is the database/sql driver of the exported signature store.
const ExportsDriver = "sqlite"

// Color modes for rendered diagnostics
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Diagnostic message templates
const (
	MsgRegionMismatch   = "Region mismatch: %s is not equal to %s"
	MsgRegionNotAllowed = "Region not allowed here: %s"
	MsgDefinitionEscape = "A value introduced in '%s' leaves its scope"
	MsgHandlerEscape    = "The capability %s leaves the scope of its handler"
	MsgInternal         = "internal error: %s"
)

// Logger names
const (
	LogChecker = "regionck.checker"
	LogExports = "regionck.exports"
)

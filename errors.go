package slidefactory

import "errors"

// Sentinel errors for library operations.
var (
	// Theme resolution errors.
	ErrThemeNotFound   = errors.New("theme not found")
	ErrThemeIncomplete = errors.New("theme incomplete")

	// Installation and resource errors.
	ErrInvalidRoot               = errors.New("invalid installation root")
	ErrLocalResourcesUnavailable = errors.New("local resources unavailable")
	ErrInvalidResourceKey        = errors.New("invalid resource key")
	ErrInvalidOverride           = errors.New("invalid resource override")
	ErrInvalidFormat             = errors.New("invalid output format")

	// Conversion errors.
	ErrNoInput         = errors.New("no input files")
	ErrMissingAsset    = errors.New("linked file missing")
	ErrMissingMetadata = errors.New("missing metadata")

	// External tool errors. A *ToolError matches ErrExternalTool and the
	// sentinel of the stage that failed.
	ErrExternalTool      = errors.New("external tool failed")
	ErrEngineFailed      = errors.New("pandoc failed")
	ErrBrowserFailed     = errors.New("browser failed")
	ErrPostProcessFailed = errors.New("ghostscript failed")

	// Install and pages errors.
	ErrInstallTargetExists  = errors.New("installation path exists")
	ErrPagesOutputExists    = errors.New("output path exists")
	ErrInvalidPagesMetadata = errors.New("invalid pages metadata")
)

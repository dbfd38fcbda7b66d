// Package assets provides the HTML page templates used by the pages builder.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in index page)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the pages builder. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the template is
// not found. This lets a course override the index page while keeping the
// default for anything it does not provide.
//
// # Directory Structure
//
//	{basePath}/
//	└── {name}.html    # e.g. index.html
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

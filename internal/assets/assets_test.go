package assets

// Notes:
// - FilesystemLoader read errors other than not-exist (ErrAssetRead) need an
//   unreadable file, which is unreliable when tests run as root. Not tested.
// - Symlink escape is tested on platforms that allow creating symlinks; others skip.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Embedded index page
// ---------------------------------------------------------------------------

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
		wantContain  []string
	}{
		{
			name:         "index template has all placeholders",
			templateName: IndexTemplate,
			wantContain:  []string{"{{.Title}}", "{{.Info}}", "{{.HTML}}", "{{.PDF}}", "{{.CSCUIVersion}}", "c-accordion"},
		},
		{
			name:         "nonexistent returns ErrTemplateNotFound",
			templateName: "nonexistent-template-xyz",
			wantErr:      ErrTemplateNotFound,
		},
		{
			name:         "empty name returns ErrInvalidTemplateName",
			templateName: "",
			wantErr:      ErrInvalidTemplateName,
		},
		{
			name:         "path traversal returns ErrInvalidTemplateName",
			templateName: "../secret",
			wantErr:      ErrInvalidTemplateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewEmbeddedLoader().LoadTemplate(tt.templateName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) content should contain %q", tt.templateName, want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Custom template directory
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid directory", tmpDir, nil},
		{"empty path", "", ErrInvalidBasePath},
		{"nonexistent directory", filepath.Join(tmpDir, "missing"), ErrInvalidBasePath},
		{"file instead of directory", filePath, ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewFilesystemLoader(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil || loader == nil {
				t.Fatalf("NewFilesystemLoader(%q) = %v, %v", tt.path, loader, err)
			}
		})
	}
}

func TestFilesystemLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte("<h1>{{.Title}}</h1>"), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadTemplate("index")
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if got != "<h1>{{.Title}}</h1>" {
		t.Errorf("LoadTemplate() = %q", got)
	}

	if _, err := loader.LoadTemplate("other"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(other) error = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadTemplate("a.b"); !errors.Is(err, ErrInvalidTemplateName) {
		t.Errorf("LoadTemplate(a.b) error = %v, want ErrInvalidTemplateName", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.html")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.Symlink(secret, filepath.Join(base, "index.html")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadTemplate("index"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTemplate() error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first with embedded fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
		got, err := resolver.LoadTemplate(IndexTemplate)
		if err != nil || !strings.Contains(got, "c-main") {
			t.Errorf("LoadTemplate() = %q, %v; want embedded index", got, err)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom"), 0o644); err != nil {
			t.Fatal(err)
		}
		resolver, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if got, _ := resolver.LoadTemplate(IndexTemplate); got != "custom" {
			t.Errorf("LoadTemplate() = %q, want %q", got, "custom")
		}
	})

	t.Run("falls back when custom lacks template", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := resolver.LoadTemplate(IndexTemplate)
		if err != nil || !strings.Contains(got, "c-main") {
			t.Errorf("LoadTemplate() = %q, %v; want embedded index", got, err)
		}
	})

	t.Run("invalid name is not masked", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := resolver.LoadTemplate("../x"); !errors.Is(err, ErrInvalidTemplateName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidTemplateName", err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/foldership/internal/domain"
	"github.com/bft-labs/foldership/pkg/log"
)

func TestLocator_FindFile(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		dirs      []string
		wantPath  string
		wantFound bool
	}{
		{
			name:      "nested three levels",
			files:     []string{"a/b/c/img.png"},
			wantPath:  "a/b/c/img.png",
			wantFound: true,
		},
		{
			name:      "file directly in root",
			files:     []string{"img.png"},
			wantPath:  "img.png",
			wantFound: true,
		},
		{
			name:      "first in lexical order",
			files:     []string{"b/2.png", "a/1.png"},
			wantPath:  "a/1.png",
			wantFound: true,
		},
		{
			name:      "skips empty directories",
			dirs:      []string{"a/empty"},
			files:     []string{"b/img.png"},
			wantPath:  "b/img.png",
			wantFound: true,
		},
		{
			name:      "empty tree",
			wantFound: false,
		},
		{
			name:      "only directories",
			dirs:      []string{"a/b", "c"},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, d := range tt.dirs {
				if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
					t.Fatal(err)
				}
			}
			for _, f := range tt.files {
				mustWriteFile(t, filepath.Join(root, f))
			}

			l := NewLocator(&osFS{log: &callLog{}}, log.NewNoopLogger())
			got, found, err := l.FindFile(root)
			if err != nil {
				t.Fatalf("FindFile() error = %v", err)
			}
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !tt.wantFound {
				if got != "" {
					t.Errorf("path = %q, want empty", got)
				}
				return
			}
			if want := filepath.Join(root, tt.wantPath); got != want {
				t.Errorf("path = %s, want %s", got, want)
			}
		})
	}
}

func TestLocator_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	l := NewLocator(&osFS{log: &callLog{}}, log.NewNoopLogger())
	path, found, err := l.FindFile(root)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, domain.ErrRootUnavailable) {
		t.Errorf("error %v does not wrap ErrRootUnavailable", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap ErrNotExist", err)
	}
	if found || path != "" {
		t.Errorf("FindFile() = %q, %v; want empty, false", path, found)
	}
}

func TestLocator_NoSideEffects(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "abc", "img.png"))

	calls := &callLog{}
	l := NewLocator(&osFS{log: calls}, log.NewNoopLogger())
	if _, _, err := l.FindFile(root); err != nil {
		t.Fatal(err)
	}

	for _, c := range calls.all() {
		if c != "walk" {
			t.Errorf("unexpected call %q", c)
		}
	}
	if !exists(filepath.Join(root, "abc", "img.png")) {
		t.Error("file was touched")
	}
}

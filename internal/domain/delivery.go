package domain

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubUnit is the name of an immediate child entry of the watched root.
type SubUnit string

// Validate rejects names that would resolve to the root itself or outside it.
func (s SubUnit) Validate() error {
	name := string(s)
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidSubUnit, name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q", ErrInvalidSubUnit, name)
	}
	return nil
}

// Path joins the sub-unit name onto root.
func (s SubUnit) Path(root string) string {
	return filepath.Join(root, string(s))
}

// Delivery describes a single attempt to deliver a file.
// It is not persisted and never retried.
type Delivery struct {
	ID        string
	Path      string
	SubUnit   SubUnit
	Caption   string
	StartedAt time.Time
}

// NewDelivery creates a Delivery for path, located while processing sub.
func NewDelivery(path string, sub SubUnit) Delivery {
	return Delivery{
		ID:        uuid.NewString(),
		Path:      path,
		SubUnit:   sub,
		Caption:   Caption(path),
		StartedAt: time.Now(),
	}
}

// Caption renders the HTML caption attached to a delivered file.
func Caption(path string) string {
	return "📂 <code>" + html.EscapeString(path) + "</code>"
}

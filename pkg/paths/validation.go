package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmad-code/agent-teams/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(p string) error {
	if p == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(p, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(p) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ResolveWithin joins the slash-separated relative path rel onto root and
// returns the absolute result. It fails with ErrPathEscape when rel is
// absolute, empty after cleaning, or normalizes to a location that is not a
// strict descendant of root.
func ResolveWithin(root, rel string) (string, error) {
	if err := ValidatePath(rel); err != nil {
		return "", errors.Wrapf(err, errors.ErrPathEscape, "invalid destination %q", rel)
	}

	slashed := filepath.ToSlash(rel)
	if path.IsAbs(slashed) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", errors.Newf(errors.ErrPathEscape, "destination %q must be relative", rel).
			WithDetail("destination", rel)
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", errors.Newf(errors.ErrPathEscape, "destination %q resolves to the target root itself", rel).
			WithDetail("destination", rel)
	}

	cleanRoot := filepath.Clean(root)
	resolved := filepath.Join(cleanRoot, filepath.FromSlash(cleaned))
	if !IsDescendant(cleanRoot, resolved) {
		return "", errors.Newf(errors.ErrPathEscape, "destination %q resolves outside %s", rel, cleanRoot).
			WithDetail("destination", rel).
			WithDetail("root", cleanRoot)
	}

	return resolved, nil
}

// IsDescendant reports whether target lies strictly below root. Both are
// compared lexically after cleaning.
func IsDescendant(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

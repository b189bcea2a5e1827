package installer

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/paths"
)

// Plan decides what to do with every entry without modifying anything.
//
// It fails only when the entries are inconsistent (duplicate destinations)
// or when targetRoot exists but is not a directory. A missing targetRoot is
// fine: every entry then plans as a create and Apply makes the root.
func (e *Engine) Plan(entries []manifest.Entry, targetRoot string, opts Options) (*Plan, error) {
	if targetRoot == "" {
		return nil, errors.New(errors.ErrInvalidTarget, "target directory is empty")
	}
	root, err := filepath.Abs(targetRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTarget, "cannot resolve %s", targetRoot)
	}

	rootExists, err := e.checkRoot(root)
	if err != nil {
		return nil, err
	}

	sorted, err := manifest.Normalize(entries)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Root:       root,
		Decisions:  make([]Decision, 0, len(sorted)),
		rootExists: rootExists,
	}
	// Directory decisions by destination, so children can see whether their
	// parent will exist. Sorting guarantees parents are decided first.
	dirs := make(map[string]Decision)
	for _, entry := range sorted {
		d := e.decide(root, entry, opts, dirs)
		if entry.IsDir() {
			dirs[path.Clean(entry.Destination)] = d
		}
		e.logger.Debug().
			Str("destination", entry.Destination).
			Str("action", string(d.Action)).
			AnErr("reason", d.Err).
			Msg("Planned entry")
		plan.Decisions = append(plan.Decisions, d)
	}

	e.logger.Info().
		Str("root", root).
		Int("entries", len(plan.Decisions)).
		Int("create", plan.Count(ActionCreate)).
		Int("overwrite", plan.Count(ActionOverwrite)).
		Int("skip", plan.Count(ActionSkip)).
		Int("conflict", plan.Count(ActionConflict)).
		Int("reject", plan.Count(ActionReject)).
		Msg("Install planned")

	return plan, nil
}

func (e *Engine) checkRoot(root string) (bool, error) {
	info, err := e.fs.Stat(root)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, errors.Newf(errors.ErrInvalidTarget, "%s exists and is not a directory", root).
				WithDetail("root", root)
		}
		return true, nil
	case isAbsent(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, errors.ErrInvalidTarget, "cannot inspect %s", root)
	}
}

func (e *Engine) decide(root string, entry manifest.Entry, opts Options, dirs map[string]Decision) Decision {
	d := Decision{Entry: entry}

	target, err := paths.ResolveWithin(root, entry.Destination)
	if err != nil {
		d.Action = ActionReject
		d.Err = err
		return d
	}
	d.Path = target

	var data []byte
	if !entry.IsDir() {
		data, err = entry.Content()
		if err != nil {
			d.Action = ActionReject
			d.Err = err
			return d
		}
		d.data = data
	}

	// A planned parent that will not exist blocks the entry. One that will
	// be replaced leaves nothing to inspect below it.
	parent, replaced := plannedAncestor(entry.Destination, dirs)
	if parent != nil {
		d.Action = ActionReject
		d.Err = blockedBy(*parent)
		return d
	}
	if replaced {
		d.Action = ActionCreate
		return d
	}

	if err := e.checkAncestors(root, target); err != nil {
		d.Action = ActionReject
		d.Err = err
		return d
	}

	info, err := e.fs.Lstat(target)
	if err != nil {
		if isAbsent(err) {
			d.Action = ActionCreate
			return d
		}
		d.Action = ActionReject
		d.Err = errors.Wrapf(err, errors.ErrIOFailure, "cannot inspect %s", entry.Destination)
		return d
	}

	same, reason, err := e.matches(target, entry, info, data)
	if err != nil {
		d.Action = ActionReject
		d.Err = err
		return d
	}
	if same {
		d.Action = ActionSkip
		return d
	}

	if opts.Force {
		d.Action = ActionOverwrite
		return d
	}
	d.Action = ActionConflict
	d.Err = errors.Newf(errors.ErrConflict, "%s, use --force to overwrite", reason).
		WithDetail("destination", entry.Destination)
	return d
}

// plannedAncestor looks for a directory decision above dest, outermost
// first. It returns the first ancestor that will not exist after Apply, or
// reports that an ancestor is overwritten and everything below it is new.
func plannedAncestor(dest string, dirs map[string]Decision) (*Decision, bool) {
	var ancestors []string
	for dir := path.Dir(path.Clean(dest)); dir != "." && dir != "/"; dir = path.Dir(dir) {
		ancestors = append(ancestors, dir)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		d, ok := dirs[ancestors[i]]
		if !ok {
			continue
		}
		switch d.Action {
		case ActionConflict, ActionReject:
			return &d, false
		case ActionOverwrite:
			return nil, true
		}
	}
	return nil, false
}

func blockedBy(parent Decision) error {
	code := errors.GetErrorCode(parent.Err)
	if code == errors.ErrUnknown {
		code = errors.ErrConflict
	}
	return errors.Newf(code, "parent %s cannot be installed: %s", parent.Entry, errors.Cause(parent.Err)).
		WithDetail("blocked_by", parent.Entry.Destination)
}

// checkAncestors walks the existing directories between root and target.
// Writing through a symlinked directory could land outside root, and a
// non-directory ancestor makes the entry impossible to create.
func (e *Engine) checkAncestors(root, target string) error {
	rel, err := filepath.Rel(root, filepath.Dir(target))
	if err != nil {
		return errors.Wrapf(err, errors.ErrPathEscape, "cannot relate %s to %s", target, root)
	}
	if rel == "." {
		return nil
	}

	current := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		shown := filepath.ToSlash(strings.TrimPrefix(current, root+string(filepath.Separator)))

		info, err := e.fs.Lstat(current)
		if err != nil {
			if isAbsent(err) {
				return nil
			}
			return errors.Wrapf(err, errors.ErrIOFailure, "cannot inspect %s", shown)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return errors.Newf(errors.ErrPathEscape, "%s is a symlink, refusing to write through it", shown).
				WithDetail("ancestor", shown)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrIOFailure, "%s is not a directory", shown).
				WithDetail("ancestor", shown)
		}
	}
	return nil
}

// matches reports whether the existing destination already satisfies the
// entry. When it does not, reason describes the difference.
func (e *Engine) matches(target string, entry manifest.Entry, info fs.FileInfo, data []byte) (bool, string, error) {
	mode := info.Mode()

	if mode&fs.ModeSymlink != 0 {
		return false, "a symlink exists at the destination", nil
	}

	if entry.IsDir() {
		if mode.IsDir() {
			return true, "", nil
		}
		return false, "a file exists where a directory is expected", nil
	}

	if mode.IsDir() {
		return false, "a directory exists where a file is expected", nil
	}
	if !mode.IsRegular() {
		return false, "destination is not a regular file", nil
	}

	existing, err := e.fs.ReadFile(target)
	if err != nil {
		return false, "", errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", entry.Destination)
	}
	if bytes.Equal(existing, data) {
		return true, "", nil
	}
	return false, "existing file has different content", nil
}

// isAbsent treats a missing path, or a path below a non-directory, as not
// present.
func isAbsent(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}

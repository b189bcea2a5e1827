package installer

import (
	"context"
	"path"
	"path/filepath"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/manifest"
)

// Apply executes plan. Entries are processed in plan order and a failing
// entry never stops the ones after it.
//
// The returned error is reserved for failures of the run as a whole: a nil
// plan, a target root that cannot be created, or a lock held by another
// install. In those cases no entry has been written, although a missing
// target root may already have been created.
//
// With opts.DryRun the result reports exactly what a successful run would
// report and the filesystem is not touched, not even to take the lock.
func (e *Engine) Apply(plan *Plan, opts Options) (*Result, error) {
	return e.ApplyContext(context.Background(), plan, opts)
}

// ApplyContext is Apply with cancellation. Cancellation is checked between
// entries: the entry being written is finished, the rest are left untouched,
// the lock is released, and the partial result is returned together with an
// ABORTED error.
func (e *Engine) ApplyContext(ctx context.Context, plan *Plan, opts Options) (*Result, error) {
	if plan == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no plan to apply")
	}

	done := logging.LogOperationStart(e.logger, "apply")
	defer done()

	result := &Result{DryRun: opts.DryRun}

	if !opts.DryRun {
		if !plan.rootExists {
			if err := e.fs.MkdirAll(plan.Root, manifest.DefaultDirMode); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to create %s", plan.Root)
			}
			e.logger.Info().Str("root", plan.Root).Msg("Created target directory")
		}

		if e.lock {
			lock, err := acquireLock(e.fs, plan.Root)
			if err != nil {
				return nil, err
			}
			defer func() {
				if err := lock.release(); err != nil {
					e.logger.Warn().Err(err).Msg("Failed to release install lock")
				}
			}()
		}
	}

	// Directories that failed to apply; nothing is written below them.
	failedDirs := make(map[string]Decision)

	for i, d := range plan.Decisions {
		if err := ctx.Err(); err != nil {
			e.logger.Warn().
				Int("remaining", len(plan.Decisions)-i).
				Msg("Install interrupted")
			return result, errors.Wrapf(err, errors.ErrAborted,
				"install interrupted, %d of %d entries processed", i, len(plan.Decisions))
		}

		outcome := Outcome{Decision: d}

		switch d.Action {
		case ActionCreate, ActionOverwrite:
			if !opts.DryRun {
				err := failedAncestor(d, failedDirs)
				if err == nil {
					err = e.applyDecision(d)
				}
				if err != nil {
					if d.Entry.IsDir() {
						d.Err = err
						failedDirs[path.Clean(d.Entry.Destination)] = d
					}
					outcome.Err = err
					result.Errors = append(result.Errors, EntryError{Entry: d.Entry, Path: d.Path, Err: err})
					e.logger.Error().Err(err).Str("destination", d.Entry.Destination).Msg("Failed to install entry")
					break
				}
				outcome.Applied = true
			}
			if d.Action == ActionCreate {
				result.Created++
			} else {
				result.Overwritten++
			}

		case ActionSkip:
			result.Skipped++

		case ActionConflict:
			outcome.Err = d.Err
			result.Conflicts = append(result.Conflicts, d)
			if !opts.DryRun {
				result.Errors = append(result.Errors, EntryError{Entry: d.Entry, Path: d.Path, Err: d.Err})
			}

		case ActionReject:
			outcome.Err = d.Err
			result.Errors = append(result.Errors, EntryError{Entry: d.Entry, Path: d.Path, Err: d.Err})

		default:
			err := errors.Newf(errors.ErrInternal, "unknown action %q", d.Action)
			outcome.Err = err
			result.Errors = append(result.Errors, EntryError{Entry: d.Entry, Path: d.Path, Err: err})
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	e.logger.Info().
		Bool("dryRun", opts.DryRun).
		Int("created", result.Created).
		Int("overwritten", result.Overwritten).
		Int("skipped", result.Skipped).
		Int("conflicts", len(result.Conflicts)).
		Int("errors", len(result.Errors)).
		Msg("Install applied")

	return result, nil
}

// failedAncestor reports an error when a directory above d failed to apply.
// Its destination may still be a symlink or a file.
func failedAncestor(d Decision, failedDirs map[string]Decision) error {
	if len(failedDirs) == 0 {
		return nil
	}
	for dir := path.Dir(path.Clean(d.Entry.Destination)); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if parent, ok := failedDirs[dir]; ok {
			return blockedBy(parent)
		}
	}
	return nil
}

func (e *Engine) applyDecision(d Decision) error {
	if d.Entry.IsDir() {
		return e.applyDir(d)
	}
	return e.applyFile(d)
}

func (e *Engine) applyFile(d Decision) error {
	if d.Action == ActionOverwrite {
		if err := e.clearDirectory(d); err != nil {
			return err
		}
	}

	if err := e.fs.MkdirAll(filepath.Dir(d.Path), manifest.DefaultDirMode); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create parent directory")
	}

	mode := d.Entry.Mode
	if mode == 0 {
		mode = manifest.DefaultFileMode
	}
	if err := atomicWrite(e.fs, d.Path, d.data, mode); err != nil {
		return err
	}

	e.logger.Debug().Str("path", d.Path).Str("action", string(d.Action)).Msg("Wrote file")
	return nil
}

// clearDirectory removes an empty directory sitting where a file is about to
// be written. A non-empty directory is never removed.
func (e *Engine) clearDirectory(d Decision) error {
	info, err := e.fs.Lstat(d.Path)
	if err != nil {
		if isAbsent(err) {
			return nil
		}
		return errors.Wrap(err, errors.ErrIOFailure, "cannot inspect destination")
	}
	if !info.IsDir() {
		return nil
	}

	children, err := e.fs.ReadDir(d.Path)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "cannot read existing directory")
	}
	if len(children) > 0 {
		return errors.Newf(errors.ErrIOFailure, "refusing to replace non-empty directory %s", d.Entry.Destination)
	}
	if err := e.fs.Remove(d.Path); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to remove existing directory")
	}
	return nil
}

func (e *Engine) applyDir(d Decision) error {
	if d.Action == ActionOverwrite {
		if err := e.fs.Remove(d.Path); err != nil && !isAbsent(err) {
			return errors.Wrap(err, errors.ErrIOFailure, "failed to remove file in the way")
		}
	}

	mode := d.Entry.Mode
	if mode == 0 {
		mode = manifest.DefaultDirMode
	}
	if err := e.fs.MkdirAll(d.Path, mode); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create directory")
	}

	e.logger.Debug().Str("path", d.Path).Str("action", string(d.Action)).Msg("Created directory")
	return nil
}

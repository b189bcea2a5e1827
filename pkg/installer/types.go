package installer

import (
	"fmt"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/manifest"
)

// Action is what Apply will do with one entry.
type Action string

const (
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
	ActionConflict  Action = "conflict"
	// ActionReject marks an entry that could not be planned at all, such as
	// one whose destination escapes the target root.
	ActionReject Action = "reject"
)

// Mutates reports whether the action changes the filesystem.
func (a Action) Mutates() bool {
	return a == ActionCreate || a == ActionOverwrite
}

// Options control a single install run. They are passed explicitly and are
// never read from the environment.
type Options struct {
	// Force replaces existing destinations whose content differs.
	Force bool
	// DryRun computes the result without touching the filesystem.
	DryRun bool
}

// Decision is the planned action for one entry.
type Decision struct {
	Entry  manifest.Entry
	Action Action
	// Path is the absolute destination path. Empty when the destination
	// could not be resolved.
	Path string
	// Err explains a Conflict or Reject decision.
	Err error

	data []byte
}

func (d Decision) String() string {
	return fmt.Sprintf("%s %s", d.Action, d.Entry)
}

// Plan is the ordered list of decisions for one target root.
type Plan struct {
	Root      string
	Decisions []Decision

	rootExists bool
}

// Count returns how many decisions have the given action.
func (p *Plan) Count(action Action) int {
	n := 0
	for _, d := range p.Decisions {
		if d.Action == action {
			n++
		}
	}
	return n
}

// HasChanges reports whether applying the plan would modify anything.
func (p *Plan) HasChanges() bool {
	if !p.rootExists {
		return true
	}
	for _, d := range p.Decisions {
		if d.Action.Mutates() {
			return true
		}
	}
	return false
}

// RootExists reports whether the target root existed when the plan was made.
func (p *Plan) RootExists() bool {
	return p.rootExists
}

// EntryError is a failure tied to one entry.
type EntryError struct {
	Entry manifest.Entry
	Path  string
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entry.Destination, errors.Cause(e.Err))
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// Code returns the error code of the underlying failure.
func (e EntryError) Code() errors.ErrorCode {
	return errors.GetErrorCode(e.Err)
}

// Outcome records what happened to one decision during Apply.
type Outcome struct {
	Decision Decision
	// Applied is true when the filesystem was changed for this entry.
	Applied bool
	Err     error
}

// Result summarizes an Apply run.
type Result struct {
	Created     int
	Skipped     int
	Overwritten int
	Conflicts   []Decision
	Errors      []EntryError
	Outcomes    []Outcome
	DryRun      bool
}

// OK reports whether the run finished without any per-entry error.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Changed is the number of entries that were (or in a dry run would be)
// written.
func (r *Result) Changed() int {
	return r.Created + r.Overwritten
}

// Package types defines the core data model shared across mksls:
// symlink specifications, conflict decisions, execution outcomes and
// the interfaces the pipeline is wired together with.
package types

import "io/fs"

// SymlinkSpec is one (target, link) pair parsed from a spec file line.
// Neither path needs to exist at parse time.
type SymlinkSpec struct {
	// Target is the path the symlink will point at.
	Target string

	// Link is the path at which the symlink is created.
	Link string
}

// Decision is the resolved action for one spec whose link path
// conflicts with an existing filesystem entry.
type Decision int

const (
	// DecisionSkip leaves the existing entry alone and creates nothing.
	DecisionSkip Decision = iota

	// DecisionBackup moves the existing entry into the backup directory
	// before creating the symlink.
	DecisionBackup

	// DecisionOverwrite removes the existing entry before creating the
	// symlink.
	DecisionOverwrite
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionSkip:
		return "skip"
	case DecisionBackup:
		return "backup"
	case DecisionOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// StickyPolicy is the resolver-wide decision carried across one run.
// Once set to anything other than PolicyNone, every later conflict is
// resolved without prompting.
type StickyPolicy int

const (
	// PolicyNone means each conflict is resolved interactively.
	PolicyNone StickyPolicy = iota

	// PolicyAlwaysSkip resolves every conflict to DecisionSkip.
	PolicyAlwaysSkip

	// PolicyAlwaysBackup resolves every conflict to DecisionBackup.
	PolicyAlwaysBackup

	// PolicyAlwaysOverwrite resolves every conflict to DecisionOverwrite.
	PolicyAlwaysOverwrite
)

// String returns the policy name as used in logs.
func (p StickyPolicy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyAlwaysSkip:
		return "always-skip"
	case PolicyAlwaysBackup:
		return "always-backup"
	case PolicyAlwaysOverwrite:
		return "always-overwrite"
	default:
		return "unknown"
	}
}

// Decision returns the fixed decision a non-None policy maps to.
// The second return is false for PolicyNone.
func (p StickyPolicy) Decision() (Decision, bool) {
	switch p {
	case PolicyAlwaysSkip:
		return DecisionSkip, true
	case PolicyAlwaysBackup:
		return DecisionBackup, true
	case PolicyAlwaysOverwrite:
		return DecisionOverwrite, true
	default:
		return DecisionSkip, false
	}
}

// Outcome classifies what happened to one spec.
type Outcome int

const (
	// OutcomeAlreadyLinked means a symlink pointing at the target was
	// already in place; nothing was done.
	OutcomeAlreadyLinked Outcome = iota

	// OutcomeCreated means the symlink was created with no conflict.
	OutcomeCreated

	// OutcomeSkipped means an existing entry was left in place.
	OutcomeSkipped

	// OutcomeBackedUp means the existing entry was moved to the backup
	// directory and the symlink was created.
	OutcomeBackedUp

	// OutcomeOverwritten means the existing entry was removed and the
	// symlink was created.
	OutcomeOverwritten

	// OutcomeFailed means the operation could not be completed; the
	// Result carries the cause.
	OutcomeFailed
)

// String returns the outcome name as used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyLinked:
		return "already-linked"
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeBackedUp:
		return "backed-up"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Tag returns the single-character action code used in result records:
// "." already linked, "d" created, "s" skipped, "b" backed up,
// "o" overwritten, "!" failed.
func (o Outcome) Tag() string {
	switch o {
	case OutcomeAlreadyLinked:
		return "."
	case OutcomeCreated:
		return "d"
	case OutcomeSkipped:
		return "s"
	case OutcomeBackedUp:
		return "b"
	case OutcomeOverwritten:
		return "o"
	case OutcomeFailed:
		return "!"
	default:
		return "?"
	}
}

// Result is the per-spec record emitted by the runner, one per
// processed spec.
type Result struct {
	Spec    SymlinkSpec
	Outcome Outcome

	// BackupPath is where the conflicting entry was moved, set only
	// for OutcomeBackedUp.
	BackupPath string

	// Err is the underlying cause, set only for OutcomeFailed.
	Err error
}

// Choice is one answer from the decision provider: the decision for
// the current conflict, and whether it applies to all remaining ones.
type Choice struct {
	Decision Decision
	All      bool
}

// DecisionProvider supplies a decision for a conflicting spec. The
// console implementation prompts the operator; tests inject scripted
// providers.
type DecisionProvider interface {
	// ResolveConflict is called once per conflict while no sticky
	// policy is in effect. It blocks until a valid choice is made.
	ResolveConflict(spec SymlinkSpec) (Choice, error)
}

// FS is the filesystem surface the executor mutates through. The
// production implementation wraps the os package; tests may substitute
// their own.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
	Symlink(oldname, newname string) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
	MkdirAll(path string, perm fs.FileMode) error
}

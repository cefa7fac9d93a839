// Package executor performs the filesystem mutations for resolved
// specs.
package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mksls/pkg/errors"
	"mksls/pkg/logging"
	"mksls/pkg/types"
)

// Inspection classifies the state of a spec's link path before any
// mutation.
type Inspection int

const (
	// InspectionMissing means nothing exists at the link path; the
	// symlink can be created without a decision.
	InspectionMissing Inspection = iota

	// InspectionAlreadyLinked means a symlink pointing at the target
	// is already in place. Never treated as a conflict.
	InspectionAlreadyLinked

	// InspectionConflict means some other entry occupies the link
	// path and a decision is needed.
	InspectionConflict
)

// Executor applies decisions to the filesystem. Each operation is
// independent; a failure produces a Failed result for that spec only.
type Executor struct {
	fs        types.FS
	backupDir string

	// now stamps backup names; overridable in tests.
	now func() time.Time
}

// New creates an executor that moves backed up files into backupDir.
func New(fs types.FS, backupDir string) *Executor {
	return &Executor{fs: fs, backupDir: backupDir, now: time.Now}
}

// Inspect reports whether the spec needs a conflict decision. The
// already-linked check takes precedence: an up-to-date symlink is
// never a conflict.
func (e *Executor) Inspect(spec types.SymlinkSpec) (Inspection, error) {
	info, err := e.fs.Lstat(spec.Link)
	if err != nil {
		if os.IsNotExist(err) {
			return InspectionMissing, nil
		}
		return InspectionConflict, errors.Wrapf(err, errors.ErrExecReadlink, "cannot inspect %s", spec.Link)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		dest, err := e.fs.Readlink(spec.Link)
		if err != nil {
			return InspectionConflict, errors.Wrapf(err, errors.ErrExecReadlink,
				"a symlink exists at %s but could not be read", spec.Link)
		}
		if dest == spec.Target {
			return InspectionAlreadyLinked, nil
		}
	}

	return InspectionConflict, nil
}

// Create makes the symlink for a spec with no conflict.
func (e *Executor) Create(spec types.SymlinkSpec) types.Result {
	logger := logging.GetLogger("executor")

	if err := e.fs.Symlink(spec.Target, spec.Link); err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrExecSymlink,
			"failed to create %s -> %s", spec.Link, spec.Target))
	}

	logger.Debug().Str("link", spec.Link).Str("target", spec.Target).Msg("symlink created")
	return types.Result{Spec: spec, Outcome: types.OutcomeCreated}
}

// Apply executes a conflict decision for a spec whose link path is
// occupied by something other than the desired symlink.
func (e *Executor) Apply(spec types.SymlinkSpec, decision types.Decision) types.Result {
	switch decision {
	case types.DecisionBackup:
		return e.backup(spec)
	case types.DecisionOverwrite:
		return e.overwrite(spec)
	default:
		return types.Result{Spec: spec, Outcome: types.OutcomeSkipped}
	}
}

// backup moves the existing entry into the backup directory, then
// creates the symlink. If the move fails the original is left
// untouched and no symlink is made.
func (e *Executor) backup(spec types.SymlinkSpec) types.Result {
	logger := logging.GetLogger("executor")

	if err := e.fs.MkdirAll(e.backupDir, 0755); err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create backup directory %s", e.backupDir))
	}

	backupPath := e.backupPath(spec.Link)
	if err := e.fs.Rename(spec.Link, backupPath); err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrExecBackup,
			"failed to move %s to %s", spec.Link, backupPath))
	}

	if err := e.fs.Symlink(spec.Target, spec.Link); err != nil {
		// The original is safe in the backup directory; surface where
		// it went along with the failure
		res := failed(spec, errors.Wrapf(err, errors.ErrExecSymlink,
			"backed up %s to %s but failed to create the symlink", spec.Link, backupPath))
		res.BackupPath = backupPath
		return res
	}

	logger.Debug().Str("link", spec.Link).Str("backup", backupPath).Msg("entry backed up and symlink created")
	return types.Result{Spec: spec, Outcome: types.OutcomeBackedUp, BackupPath: backupPath}
}

// overwrite removes the existing entry, then creates the symlink.
func (e *Executor) overwrite(spec types.SymlinkSpec) types.Result {
	logger := logging.GetLogger("executor")

	info, err := e.fs.Lstat(spec.Link)
	if err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrExecRemove, "cannot remove %s", spec.Link))
	}

	if info.IsDir() {
		err = e.fs.RemoveAll(spec.Link)
	} else {
		err = e.fs.Remove(spec.Link)
	}
	if err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrExecRemove,
			"failed to remove %s before creating the symlink", spec.Link))
	}

	if err := e.fs.Symlink(spec.Target, spec.Link); err != nil {
		return failed(spec, errors.Wrapf(err, errors.ErrExecSymlink,
			"failed to create %s -> %s", spec.Link, spec.Target))
	}

	logger.Debug().Str("link", spec.Link).Str("target", spec.Target).Msg("entry overwritten with symlink")
	return types.Result{Spec: spec, Outcome: types.OutcomeOverwritten}
}

// backupPath builds a collision-free destination name for a backed up
// entry: <stem>_backup_<timestamp><ext>, with a numeric suffix in the
// unlikely case the name is taken.
func (e *Executor) backupPath(link string) string {
	base := filepath.Base(link)
	ext := filepath.Ext(base)
	if ext == base {
		// Hidden files like ".vimrc" have no real extension
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)

	name := fmt.Sprintf("%s_backup_%s%s", stem, e.now().Format(time.RFC3339Nano), ext)
	candidate := filepath.Join(e.backupDir, name)
	for n := 1; ; n++ {
		if _, err := e.fs.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(e.backupDir, fmt.Sprintf("%s.%d", name, n))
	}
}

func failed(spec types.SymlinkSpec, err error) types.Result {
	return types.Result{Spec: spec, Outcome: types.OutcomeFailed, Err: err}
}

package executor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mksls/pkg/errors"
	"mksls/pkg/filesystem"
	"mksls/pkg/types"
)

func newTestExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	backupDir := filepath.Join(t.TempDir(), "backups")
	return New(filesystem.NewOS(), backupDir), backupDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInspect(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "content")

	t.Run("missing link path", func(t *testing.T) {
		insp, err := ex.Inspect(types.SymlinkSpec{Target: target, Link: filepath.Join(dir, "gone")})
		require.NoError(t, err)
		assert.Equal(t, InspectionMissing, insp)
	})

	t.Run("correct symlink already in place", func(t *testing.T) {
		link := filepath.Join(dir, "good-link")
		require.NoError(t, os.Symlink(target, link))

		insp, err := ex.Inspect(types.SymlinkSpec{Target: target, Link: link})
		require.NoError(t, err)
		assert.Equal(t, InspectionAlreadyLinked, insp)
	})

	t.Run("symlink to something else is a conflict", func(t *testing.T) {
		link := filepath.Join(dir, "stale-link")
		require.NoError(t, os.Symlink(filepath.Join(dir, "elsewhere"), link))

		insp, err := ex.Inspect(types.SymlinkSpec{Target: target, Link: link})
		require.NoError(t, err)
		assert.Equal(t, InspectionConflict, insp)
	})

	t.Run("plain file is a conflict", func(t *testing.T) {
		link := filepath.Join(dir, "occupied")
		writeFile(t, link, "in the way")

		insp, err := ex.Inspect(types.SymlinkSpec{Target: target, Link: link})
		require.NoError(t, err)
		assert.Equal(t, InspectionConflict, insp)
	})
}

func TestCreateThenAlreadyLinked(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "content")
	spec := types.SymlinkSpec{Target: target, Link: filepath.Join(dir, "link")}

	res := ex.Create(spec)
	assert.Equal(t, types.OutcomeCreated, res.Outcome)

	dest, err := os.Readlink(spec.Link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)

	// Second pass over the same spec must be a no-op
	insp, err := ex.Inspect(spec)
	require.NoError(t, err)
	assert.Equal(t, InspectionAlreadyLinked, insp)
}

func TestCreateFailsWithoutParentDir(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	spec := types.SymlinkSpec{
		Target: filepath.Join(dir, "target"),
		Link:   filepath.Join(dir, "missing", "parent", "link"),
	}

	res := ex.Create(spec)
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.True(t, errors.IsCode(res.Err, errors.ErrExecSymlink))
}

func TestApplySkip(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	link := filepath.Join(dir, "existing")
	writeFile(t, link, "keep me")
	spec := types.SymlinkSpec{Target: filepath.Join(dir, "target"), Link: link}

	res := ex.Apply(spec, types.DecisionSkip)
	assert.Equal(t, types.OutcomeSkipped, res.Outcome)

	// Nothing moved, nothing linked
	content, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestApplyBackup(t *testing.T) {
	ex, backupDir := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "the target")
	link := filepath.Join(dir, ".foorc")
	writeFile(t, link, "original contents")
	spec := types.SymlinkSpec{Target: target, Link: link}

	res := ex.Apply(spec, types.DecisionBackup)
	require.Equal(t, types.OutcomeBackedUp, res.Outcome, "unexpected error: %v", res.Err)

	// The link path is now the symlink
	dest, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)

	// The original landed in the backup directory, content intact,
	// name derived from the original base name
	require.NotEmpty(t, res.BackupPath)
	assert.Equal(t, backupDir, filepath.Dir(res.BackupPath))
	assert.True(t, strings.Contains(filepath.Base(res.BackupPath), ".foorc_backup_"),
		"backup name %q should contain the original name", res.BackupPath)
	content, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "original contents", string(content))
}

func TestBackupNamesDoNotCollide(t *testing.T) {
	ex, backupDir := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "t")

	// Same base name backed up twice in one run
	for _, sub := range []string{"a", "b"} {
		link := filepath.Join(dir, sub, "conf")
		writeFile(t, link, "contents of "+sub)
		res := ex.Apply(types.SymlinkSpec{Target: target, Link: link}, types.DecisionBackup)
		require.Equal(t, types.OutcomeBackedUp, res.Outcome, "unexpected error: %v", res.Err)
	}

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBackupFailureLeavesOriginalUntouched(t *testing.T) {
	dir := t.TempDir()
	// A file where the backup directory should be makes MkdirAll fail
	blockedBackupDir := filepath.Join(dir, "blocked")
	writeFile(t, blockedBackupDir, "not a directory")
	ex := New(filesystem.NewOS(), blockedBackupDir)

	target := filepath.Join(dir, "target")
	writeFile(t, target, "t")
	link := filepath.Join(dir, "precious")
	writeFile(t, link, "precious data")
	spec := types.SymlinkSpec{Target: target, Link: link}

	res := ex.Apply(spec, types.DecisionBackup)
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)

	// Fail-safe: the original file is still there and is not a symlink
	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
	content, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "precious data", string(content))
}

func TestApplyOverwriteFile(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "t")
	link := filepath.Join(dir, "doomed")
	writeFile(t, link, "bye")
	spec := types.SymlinkSpec{Target: target, Link: link}

	res := ex.Apply(spec, types.DecisionOverwrite)
	require.Equal(t, types.OutcomeOverwritten, res.Outcome, "unexpected error: %v", res.Err)

	dest, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)
}

func TestApplyOverwriteDirectory(t *testing.T) {
	ex, _ := newTestExecutor(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeFile(t, target, "t")
	link := filepath.Join(dir, "dirlink")
	writeFile(t, filepath.Join(link, "nested", "file"), "inside")
	spec := types.SymlinkSpec{Target: target, Link: link}

	res := ex.Apply(spec, types.DecisionOverwrite)
	require.Equal(t, types.OutcomeOverwritten, res.Outcome, "unexpected error: %v", res.Err)

	dest, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)
}

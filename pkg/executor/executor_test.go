package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/plan"
)

func TestExecuteStagesFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.exe"), []byte("payload"), 0644))

	ops := []plan.Operation{
		{Type: plan.OperationCreateDir, Target: dst},
		{Type: plan.OperationCreateDir, Target: filepath.Join(dst, "bin")},
		{Type: plan.OperationCopyFile, Source: filepath.Join(src, "app.exe"), Target: filepath.Join(dst, "bin", "app.exe")},
		{Type: plan.OperationWriteFile, Target: filepath.Join(dst, "notes.txt"), Content: "installed"},
	}

	require.NoError(t, New(false).Execute(ops))

	data, err := os.ReadFile(filepath.Join(dst, "bin", "app.exe"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "installed", string(data))
}

func TestExecuteRemoves(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "bin"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "bin", "app.exe"), []byte("x"), 0644))

	ops := []plan.Operation{
		{Type: plan.OperationDeleteFile, Target: filepath.Join(dst, "bin", "app.exe")},
		{Type: plan.OperationDeleteDir, Target: filepath.Join(dst, "bin")},
		{Type: plan.OperationDeleteDir, Target: dst},
	}

	require.NoError(t, New(false).Execute(ops))

	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteKeepsNonEmptyDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(dst, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "user-data.txt"), []byte("keep me"), 0644))

	ops := []plan.Operation{
		{Type: plan.OperationDeleteDir, Target: dst},
	}

	require.NoError(t, New(false).Execute(ops))

	_, err := os.Stat(filepath.Join(dst, "user-data.txt"))
	assert.NoError(t, err)
}

func TestDryRunTouchesNothing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")

	ops := []plan.Operation{
		{Type: plan.OperationCreateDir, Target: dst},
		{Type: plan.OperationWriteFile, Target: filepath.Join(dst, "a.txt"), Content: "x"},
	}

	require.NoError(t, New(true).Execute(ops))

	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertRejectsBadOperations(t *testing.T) {
	e := New(false)

	_, err := e.convert(plan.Operation{Type: plan.OperationCopyFile, Target: "/x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid))

	_, err = e.convert(plan.Operation{Type: plan.OperationCreateDir})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid))

	_, err = e.convert(plan.Operation{Type: "unknown", Target: "/x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid))
}

// Package executor runs staging plans through synthfs: operations are
// validated and sequenced as a batch before anything touches the disk.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/plan"
)

// Executor executes plan operations.
type Executor struct {
	logger zerolog.Logger
	dryRun bool
}

// New creates an executor. In dry-run mode operations are logged but
// not performed.
func New(dryRun bool) *Executor {
	return &Executor{
		logger: logging.GetLogger("executor"),
		dryRun: dryRun,
	}
}

// Execute runs the operations in order. Directory removals run after
// the synthfs pipeline and tolerate leftovers: a directory that still
// has files the install never staged (logs, user data) is kept, with a
// warning.
func (e *Executor) Execute(ops []plan.Operation) error {
	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - operations would be executed:")
		for _, op := range ops {
			e.logOperation(op)
		}
		return nil
	}

	var synthOps []synthfs.Operation
	var dirRemovals []plan.Operation

	for _, op := range ops {
		if op.Type == plan.OperationDeleteDir {
			dirRemovals = append(dirRemovals, op)
			continue
		}
		synthOp, err := e.convert(op)
		if err != nil {
			return err
		}
		synthOps = append(synthOps, synthOp)
	}

	if len(synthOps) > 0 {
		fsRoot, err := volumeRoot(ops[0].Target)
		if err != nil {
			return err
		}

		pipeline := synthfs.NewMemPipeline()
		for _, synthOp := range synthOps {
			if err := pipeline.Add(synthOp); err != nil {
				return errors.Wrap(err, errors.ErrStageFailed, "failed to add operation to pipeline")
			}
		}

		e.logger.Info().Int("operationCount", len(synthOps)).Msg("Executing operations")

		result := synthfs.NewExecutor().Run(context.Background(), pipeline, filesystem.NewOSFileSystem(fsRoot))
		if result.GetError() != nil {
			return errors.Wrap(result.GetError(), errors.ErrStageFailed, "failed to execute operations")
		}
	}

	// synthfs models deletion of files; empty directories are removed
	// directly.
	for _, op := range dirRemovals {
		if err := os.Remove(op.Target); err != nil && !os.IsNotExist(err) {
			e.logger.Warn().
				Str("target", op.Target).
				Err(err).
				Msg("Leaving directory in place")
		}
	}

	e.logger.Info().Msg("All operations executed successfully")
	return nil
}

// convert maps a plan operation onto a synthfs operation.
func (e *Executor) convert(op plan.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.Newf(errors.ErrPlanInvalid, "operation %q has no target", op.Type)
	}

	rel, err := rootRelative(op.Target)
	if err != nil {
		return nil, err
	}

	switch op.Type {
	case plan.OperationCreateDir:
		opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
		createOp := operations.NewCreateDirectoryOperation(opID, rel)
		createOp.SetItem(&directoryItem{path: rel, mode: 0755})
		return synthfs.NewOperationsPackageAdapter(createOp), nil

	case plan.OperationCopyFile:
		if op.Source == "" {
			return nil, errors.New(errors.ErrPlanInvalid, "copy operation requires a source")
		}
		relSource, err := rootRelative(op.Source)
		if err != nil {
			return nil, err
		}
		opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(op.Source), op.Target))
		copyOp := operations.NewCopyOperation(opID, rel)
		copyOp.SetPaths(relSource, rel)
		return synthfs.NewOperationsPackageAdapter(copyOp), nil

	case plan.OperationWriteFile:
		opID := core.OperationID(fmt.Sprintf("write-file-%s", op.Target))
		createOp := operations.NewCreateFileOperation(opID, rel)
		createOp.SetItem(&fileItem{path: rel, content: []byte(op.Content), mode: 0644})
		return synthfs.NewOperationsPackageAdapter(createOp), nil

	case plan.OperationDeleteFile:
		opID := core.OperationID(fmt.Sprintf("delete-%s", op.Target))
		deleteOp := operations.NewDeleteOperation(opID, rel)
		return synthfs.NewOperationsPackageAdapter(deleteOp), nil

	default:
		return nil, errors.Newf(errors.ErrPlanInvalid, "unsupported operation type: %s", op.Type)
	}
}

func (e *Executor) logOperation(op plan.Operation) {
	switch op.Type {
	case plan.OperationCreateDir:
		e.logger.Info().Str("target", op.Target).Msg("Would create directory")
	case plan.OperationCopyFile:
		e.logger.Info().Str("source", op.Source).Str("target", op.Target).Msg("Would copy file")
	case plan.OperationWriteFile:
		e.logger.Info().Str("target", op.Target).Int("contentLen", len(op.Content)).Msg("Would write file")
	case plan.OperationDeleteFile:
		e.logger.Info().Str("target", op.Target).Msg("Would delete file")
	case plan.OperationDeleteDir:
		e.logger.Info().Str("target", op.Target).Msg("Would remove directory")
	default:
		e.logger.Info().Msg("Would execute operation")
	}
}

// volumeRoot returns the filesystem root the synthfs OS filesystem is
// anchored at: "/" on Unix, the volume root (e.g. `C:\`) on Windows.
func volumeRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to normalize path: %s", path)
	}
	return filepath.VolumeName(abs) + string(filepath.Separator), nil
}

// rootRelative converts an absolute path to the volume-root-relative
// form synthfs operates on.
func rootRelative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to normalize path: %s", path)
	}
	root := filepath.VolumeName(abs) + string(filepath.Separator)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", path)
	}
	return rel, nil
}

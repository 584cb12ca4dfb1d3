package commands

import (
	stderrors "errors"

	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/executor"
	"github.com/whispertools/wtsetup/pkg/lifecycle"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/plan"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// UninstallOptions configures an uninstall run.
type UninstallOptions struct {
	// InstallDir is the install root holding the receipt.
	InstallDir string

	// Store is the PATH store to maintain. Nil selects the system
	// store for the scope the receipt recorded.
	Store envpath.Store

	// Hooks overrides the lifecycle integrations, for tests.
	Hooks *lifecycle.Hooks

	DryRun bool
}

// UninstallResult reports what an uninstall did.
type UninstallResult struct {
	Receipt *receipt.Receipt
	Plan    *plan.Plan
	DryRun  bool
}

// Uninstall reverts an installation from its receipt: PATH entries,
// shortcuts, and the registry entry first, then the staged files. The
// integrations are each attempted even when one fails; file removal
// proceeds regardless so a broken shortcut cannot strand the payload.
func Uninstall(opts UninstallOptions) (*UninstallResult, error) {
	logger := logging.GetLogger("commands.uninstall")

	r, err := receipt.Read(opts.InstallDir)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("product", r.Product).
		Str("install_dir", r.InstallDir).
		Bool("dry_run", opts.DryRun).
		Msg("Starting uninstall")

	hooks := opts.Hooks
	if hooks != nil {
		hooks.DryRun = opts.DryRun
	} else {
		store := opts.Store
		if store == nil {
			scope := envpath.Scope(r.PathScope)
			if scope == "" {
				scope = envpath.ScopeMachine
			}
			store, err = envpath.NewSystemStore(scope)
			if err != nil {
				return nil, err
			}
		}
		hooks = lifecycle.New(store, opts.DryRun)
	}

	var errs []error
	if err := hooks.PostUninstall(r); err != nil {
		errs = append(errs, err)
	}

	pl := plan.Uninstall(r)
	if err := executor.New(opts.DryRun).Execute(pl.Operations); err != nil {
		errs = append(errs, err)
	}

	result := &UninstallResult{Receipt: r, Plan: pl, DryRun: opts.DryRun}
	if err := stderrors.Join(errs...); err != nil {
		return result, err
	}

	logger.Info().Str("product", r.Product).Msg("Uninstall complete")
	return result, nil
}

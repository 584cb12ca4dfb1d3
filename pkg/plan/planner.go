package plan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/receipt"
)

// Install builds the staging plan for a manifest: one create-dir per
// directory and one copy-file per payload file, component by component
// in manifest order. Component sources are resolved against
// sourceRoot.
func Install(m *manifest.Manifest, sourceRoot, installDir string) (*Plan, error) {
	logger := logging.GetLogger("plan")

	p := &Plan{}
	seenDirs := map[string]bool{}

	addDir := func(abs string) {
		if seenDirs[abs] {
			return
		}
		seenDirs[abs] = true
		p.Operations = append(p.Operations, Operation{
			Type:        OperationCreateDir,
			Target:      abs,
			Description: fmt.Sprintf("create directory %s", abs),
		})
		if rel, err := filepath.Rel(installDir, abs); err == nil && rel != "." {
			p.Dirs = append(p.Dirs, rel)
		}
	}

	addDir(installDir)

	for _, c := range m.Components {
		src := c.Source
		if !filepath.IsAbs(src) {
			src = filepath.Join(sourceRoot, src)
		}
		info, err := os.Stat(src)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "component %q source %s", c.Name, src)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrPlanInvalid, "component %q source %s is not a directory", c.Name, src)
		}

		destDir := c.DestDir(installDir)
		addDir(destDir)

		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}

			target := filepath.Join(destDir, rel)
			if d.IsDir() {
				addDir(target)
				return nil
			}

			p.Operations = append(p.Operations, Operation{
				Type:        OperationCopyFile,
				Source:      path,
				Target:      target,
				Description: fmt.Sprintf("copy %s", rel),
			})
			if relToRoot, err := filepath.Rel(installDir, target); err == nil {
				p.Files = append(p.Files, relToRoot)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to walk component %q", c.Name)
		}
	}

	logger.Debug().
		Int("operations", len(p.Operations)).
		Int("files", len(p.Files)).
		Msg("Install plan built")

	return p, nil
}

// Uninstall builds the removal plan from an install receipt: staged
// files first, then the receipt itself, then directories innermost
// first, and finally the install root.
func Uninstall(r *receipt.Receipt) *Plan {
	p := &Plan{}

	for i := len(r.Files) - 1; i >= 0; i-- {
		target := filepath.Join(r.InstallDir, r.Files[i])
		p.Operations = append(p.Operations, Operation{
			Type:        OperationDeleteFile,
			Target:      target,
			Description: fmt.Sprintf("delete %s", r.Files[i]),
		})
	}

	p.Operations = append(p.Operations, Operation{
		Type:        OperationDeleteFile,
		Target:      receipt.Path(r.InstallDir),
		Description: "delete install receipt",
	})

	// Deepest directories first so each is empty when its turn comes.
	dirs := append([]string(nil), r.Dirs...)
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})
	for _, dir := range dirs {
		target := filepath.Join(r.InstallDir, dir)
		p.Operations = append(p.Operations, Operation{
			Type:        OperationDeleteDir,
			Target:      target,
			Description: fmt.Sprintf("remove directory %s", dir),
		})
	}

	p.Operations = append(p.Operations, Operation{
		Type:        OperationDeleteDir,
		Target:      r.InstallDir,
		Description: "remove install root",
	})

	return p
}

package commands

import (
	"os"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/paths"
	"github.com/whispertools/wtsetup/pkg/wix"
)

// ExportWixOptions configures the WiX export.
type ExportWixOptions struct {
	// ManifestPath names the manifest; empty triggers discovery.
	ManifestPath string

	// Output is the .wxs file to write; empty writes nothing and
	// returns the document only.
	Output string
}

// ExportWixResult carries the rendered document.
type ExportWixResult struct {
	Document   string
	OutputPath string
}

// ExportWix renders the manifest as WiX authoring, optionally writing
// it to disk.
func ExportWix(opts ExportWixOptions) (*ExportWixResult, error) {
	p, err := paths.New(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return nil, err
	}

	doc, err := wix.Export(m)
	if err != nil {
		return nil, err
	}

	result := &ExportWixResult{Document: doc, OutputPath: opts.Output}
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(doc), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", opts.Output)
		}
	}
	return result, nil
}

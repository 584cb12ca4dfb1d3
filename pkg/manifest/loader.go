package manifest

import (
	stderrors "errors"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/whispertools/wtsetup/pkg/errors"
	"github.com/whispertools/wtsetup/pkg/logging"
)

// rawBytesProvider feeds embedded bytes into koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load reads a manifest file layered over the embedded defaults and
// validates it.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "manifest not found at %s", path)
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultManifest}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	// 2. User manifest
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", path)
	}

	var m Manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to decode %s", path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("product", m.Product.Name).
		Int("components", len(m.Components)).
		Msg("Manifest loaded")

	return &m, nil
}

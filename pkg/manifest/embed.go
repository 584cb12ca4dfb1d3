package manifest

import _ "embed"

//go:embed defaults.toml
var defaultManifest []byte

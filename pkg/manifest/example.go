package manifest

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/whispertools/wtsetup/pkg/errors"
)

// Example returns the stock Whisper Transcriber manifest, used by
// `wtsetup init` to seed a new packaging directory.
func Example() *Manifest {
	return &Manifest{
		Product: Product{
			Name:       "Whisper Transcriber",
			Version:    "1.0.0",
			Publisher:  "Whisper Tools",
			InstallDir: `C:\Program Files\Whisper Transcriber`,
		},
		Components: []Component{
			{Name: "app", Source: "dist/app", Dest: "."},
			{Name: "ffmpeg", Source: "vendor/ffmpeg", AddToPath: []string{"bin"}},
			{Name: "models", Source: "models"},
		},
		Shortcuts: []Shortcut{
			{Name: "Whisper Transcriber", Target: "WhisperTranscriber.exe", Location: LocationStartMenu},
		},
		Path:     PathConfig{Scope: "machine"},
		Registry: RegistryConfig{UninstallEntry: true},
	}
}

// ExampleTOML renders the example manifest as TOML bytes.
func ExampleTOML() ([]byte, error) {
	data, err := toml.Marshal(Example())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render example manifest")
	}
	return data, nil
}

package testutil

import "fmt"

// ManifestTOML returns a minimal valid manifest for the given product,
// with one component staged into the install root.
func ManifestTOML(product string) string {
	return fmt.Sprintf(`[product]
name = %q
version = "1.0.0"
publisher = "Whisper Tools"

[[component]]
name = "app"
source = "dist/app"
dest = "."
`, product)
}

// FullManifestTOML returns a manifest exercising every section:
// components with PATH entries, shortcuts, and registry wiring.
func FullManifestTOML() string {
	return `[product]
name = "Whisper Transcriber"
version = "1.4.0"
publisher = "Whisper Tools"

[[component]]
name = "app"
source = "dist/app"
dest = "."

[[component]]
name = "ffmpeg"
source = "vendor/ffmpeg"
add_to_path = ["bin"]

[[shortcut]]
name = "Whisper Transcriber"
target = "WhisperTranscriber.exe"
location = "startmenu"

[path]
scope = "machine"

[registry]
uninstall_entry = true
`
}

// SeedFullManifestSources writes the payload files FullManifestTOML
// references.
func SeedFullManifestSources(env *TestEnvironment) {
	env.WriteSourceFile("dist/app/WhisperTranscriber.exe", []byte("exe"))
	env.WriteSourceFile("dist/app/README.txt", []byte("readme"))
	env.WriteSourceFile("vendor/ffmpeg/bin/ffmpeg.exe", []byte("ffmpeg"))
}

package main

import (
	"fmt"
	"os"

	"github.com/whispertools/wtsetup/pkg/style"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(os.Stderr.Fd())
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}

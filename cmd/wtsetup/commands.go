package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/whispertools/wtsetup/internal/version"
	"github.com/whispertools/wtsetup/pkg/cobrax/topics"
	"github.com/whispertools/wtsetup/pkg/commands"
	"github.com/whispertools/wtsetup/pkg/envpath"
	"github.com/whispertools/wtsetup/pkg/logging"
	"github.com/whispertools/wtsetup/pkg/manifest"
	"github.com/whispertools/wtsetup/pkg/paths"
	"github.com/whispertools/wtsetup/pkg/style"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity    int
		dryRun       bool
		manifestPath string
	)

	rootCmd := &cobra.Command{
		Use:     "wtsetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", MsgFlagManifest)

	// Disable automatic help command (the topics system installs its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help from the embedded docs
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize help topics")
		}
	}

	return rootCmd
}

// rootFlags reads the persistent flags from any command in the tree.
func rootFlags(cmd *cobra.Command) (manifestPath string, dryRun bool) {
	manifestPath, _ = cmd.Root().PersistentFlags().GetString("manifest")
	dryRun, _ = cmd.Root().PersistentFlags().GetBool("dry-run")
	return manifestPath, dryRun
}

func renderer() style.Renderer {
	return style.NewRenderer(os.Stdout.Fd())
}

func newInstallCmd() *cobra.Command {
	var (
		installDir string
		sourceDir  string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: MsgInstallShort,
		Long: `Install stages the manifest's components into the install directory,
adds the configured PATH entries, creates shortcuts, and registers the
product for Add/Remove Programs. A receipt is written into the install
directory recording everything done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, dryRun := rootFlags(cmd)

			result, err := commands.Install(commands.InstallOptions{
				ManifestPath: manifestPath,
				InstallDir:   installDir,
				SourceDir:    sourceDir,
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}

			fmt.Println(renderer().RenderPlan(result.Plan, dryRun))
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			} else {
				fmt.Printf(MsgInstalledFormat,
					result.Manifest.Product.Name, result.Manifest.Product.Version, result.InstallDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&installDir, "install-dir", "", MsgFlagInstallDir)
	cmd.Flags().StringVar(&sourceDir, "source", "", MsgFlagSource)
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var installDir string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: MsgUninstallShort,
		Long: `Uninstall reads the receipt from the install directory and undoes the
recorded installation: PATH entries, shortcuts, and the registry entry
are removed first, then the staged files and directories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, dryRun := rootFlags(cmd)

			dir, err := resolveInstallDir(installDir, manifestPath)
			if err != nil {
				return err
			}

			result, err := commands.Uninstall(commands.UninstallOptions{
				InstallDir: dir,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Println(renderer().RenderPlan(result.Plan, true))
				fmt.Println(MsgDryRunNotice)
			} else {
				fmt.Printf(MsgUninstalled, result.Receipt.Product)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&installDir, "install-dir", "", MsgFlagInstallDir)
	return cmd
}

func newStatusCmd() *cobra.Command {
	var installDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long: `Status compares the install receipt against the live system: whether
the staged files are intact, the PATH entries are still present, and
the shortcuts still exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := rootFlags(cmd)

			dir, err := resolveInstallDir(installDir, manifestPath)
			if err != nil {
				return err
			}

			result, err := commands.Status(commands.StatusOptions{InstallDir: dir})
			if err != nil {
				return err
			}

			r := renderer()
			fmt.Println(r.RenderReceipt(result.Receipt))

			if !result.FilesIntact {
				for _, rel := range result.MissingFiles {
					fmt.Printf("File missing: %s\n", rel)
				}
				for _, rel := range result.ModifiedFiles {
					fmt.Printf("File modified since install: %s\n", rel)
				}
			}
			for _, e := range result.PathEntries {
				if !e.Present {
					fmt.Printf("PATH entry missing: %s\n", e.Item)
				}
			}
			for _, e := range result.Shortcuts {
				if !e.Present {
					fmt.Printf("Shortcut missing: %s\n", e.Item)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&installDir, "install-dir", "", MsgFlagInstallDir)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: MsgValidateShort,
		Long: `Validate loads the manifest, checks its structure, and verifies the
component sources exist, without touching the system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := rootFlags(cmd)

			result, err := commands.Validate(commands.ValidateOptions{ManifestPath: manifestPath})
			if err != nil {
				return err
			}

			fmt.Println(MsgManifestValid)
			fmt.Printf("  product: %s %s\n", result.Manifest.Product.Name, result.Manifest.Product.Version)
			fmt.Printf("  install dir: %s\n", result.InstallDir)
			for _, entry := range result.PathEntries {
				fmt.Printf("  PATH entry: %s\n", entry)
			}
			if len(result.MissingSources) > 0 {
				fmt.Println(MsgMissingSources)
				for _, src := range result.MissingSources {
					fmt.Printf("  %s\n", src)
				}
			}
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: MsgInitShort,
		Long:  `Init writes a documented example wtsetup.toml to start a new project from.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}

			path, err := commands.InitManifest(commands.InitManifestOptions{Dir: dir, Force: force})
			if err != nil {
				return err
			}
			fmt.Printf(MsgManifestCreated, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: MsgExportShort,
	}

	var output string
	wixCmd := &cobra.Command{
		Use:   "wix",
		Short: MsgExportWixShort,
		Long: `Export wix renders the manifest as a WiX v3 .wxs document so the same
wtsetup.toml can drive an MSI build. Payload files are referenced
through heat-harvested component groups named after the manifest
components.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := rootFlags(cmd)

			result, err := commands.ExportWix(commands.ExportWixOptions{
				ManifestPath: manifestPath,
				Output:       output,
			})
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(result.Document)
			} else {
				fmt.Printf(MsgWixWritten, output)
			}
			return nil
		},
	}
	wixCmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	exportCmd.AddCommand(wixCmd)
	return exportCmd
}

func newPathCmd() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: MsgPathShort,
		Long: `Path maintains the persistent PATH environment list directly, without
a manifest. Matching is case-insensitive and delimiter-bounded; add
and remove are both idempotent.`,
	}

	var scopeName string
	pathCmd.PersistentFlags().StringVar(&scopeName, "scope", string(envpath.ScopeMachine), MsgFlagScope)

	parseScope := func() (envpath.Scope, error) {
		return envpath.ParseScope(scopeName)
	}

	addCmd := &cobra.Command{
		Use:   "add <dir>",
		Short: MsgPathAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope()
			if err != nil {
				return err
			}
			if err := commands.PathAdd(commands.PathOptions{Dir: args[0], Scope: scope}); err != nil {
				return err
			}
			fmt.Printf(MsgPathAdded, args[0], scope)
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <dir>",
		Aliases: []string{"rm"},
		Short:   MsgPathRmShort,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope()
			if err != nil {
				return err
			}
			if err := commands.PathRemove(commands.PathOptions{Dir: args[0], Scope: scope}); err != nil {
				return err
			}
			fmt.Printf(MsgPathRemoved, args[0], scope)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: MsgPathListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope()
			if err != nil {
				return err
			}
			entries, err := commands.PathList(commands.PathOptions{Scope: scope})
			if err != nil {
				return err
			}
			fmt.Println(renderer().RenderPathEntries(entries, nil))
			return nil
		},
	}

	pathCmd.AddCommand(addCmd, removeCmd, listCmd)
	return pathCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wtsetup version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}

// resolveInstallDir picks the install root for uninstall and status:
// the explicit flag first, then the manifest if one can be found.
func resolveInstallDir(flagValue, manifestPath string) (string, error) {
	if flagValue != "" {
		return paths.ResolveInstallDir(flagValue)
	}

	p, err := paths.New(manifestPath)
	if err != nil {
		return "", err
	}
	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return "", err
	}

	configured := m.Product.InstallDir
	if configured == "" {
		configured = paths.DefaultInstallDir(m.Product.Name)
	}
	return paths.ResolveInstallDir(configured)
}

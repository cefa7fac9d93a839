package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mksls/internal/version"
	"mksls/pkg/cobrax/topics"
	"mksls/pkg/config"
	"mksls/pkg/executor"
	"mksls/pkg/filesystem"
	"mksls/pkg/logging"
	"mksls/pkg/paths"
	"mksls/pkg/resolver"
	"mksls/pkg/runner"
	"mksls/pkg/scanner"
	"mksls/pkg/types"
	"mksls/pkg/ui"
	"mksls/pkg/ui/output"
	"mksls/pkg/ui/prompt"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity    int
		filename     string
		backupDir    string
		depth        int
		alwaysSkip   bool
		alwaysBackup bool
	)

	rootCmd := &cobra.Command{
		Use:     "mksls DIR",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := config.CLIOverrides{
				AlwaysSkip:   alwaysSkip,
				AlwaysBackup: alwaysBackup,
			}
			if cmd.Flags().Changed("filename") {
				overrides.Filename = filename
			}
			if cmd.Flags().Changed("backup-dir") {
				overrides.BackupDir = backupDir
			}
			if cmd.Flags().Changed("depth") {
				overrides.Depth = &depth
			}
			return runRoot(args[0], overrides)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	// Run flags
	rootCmd.Flags().StringVarP(&filename, "filename", "f", "", MsgFlagFilename)
	rootCmd.Flags().StringVarP(&backupDir, "backup-dir", "b", "", MsgFlagBackupDir)
	rootCmd.Flags().IntVarP(&depth, "depth", "d", -1, MsgFlagDepth)
	rootCmd.Flags().BoolVar(&alwaysSkip, "always-skip", false, MsgFlagAlwaysSkip)
	rootCmd.Flags().BoolVar(&alwaysBackup, "always-backup", false, MsgFlagAlwaysBackup)
	rootCmd.MarkFlagsMutuallyExclusive("always-skip", "always-backup")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	if topicsCmd := newTopicsCmd(); topicsCmd != nil {
		rootCmd.AddCommand(topicsCmd)
	}

	return rootCmd
}

// runRoot wires the pipeline together and processes the whole tree.
func runRoot(dir string, overrides config.CLIOverrides) error {
	p := paths.New()

	cfg, err := config.Load(p)
	if err != nil {
		return err
	}

	params, err := config.NewParams(dir, cfg, overrides)
	if err != nil {
		return err
	}

	format := ui.DetectFormat(os.Stdout)
	if params.Policy == types.PolicyNone && !ui.Interactive(os.Stdin) {
		log.Warn().Msg("stdin is not a terminal; conflict prompts will read from it anyway")
	}

	osfs := filesystem.NewOS()
	sc := &scanner.Scanner{Root: params.Dir, Filename: params.Filename, Depth: params.Depth}
	ex := executor.New(osfs, params.BackupDir)
	rs := resolver.New(params.Policy, prompt.NewConsole(os.Stdin, os.Stdout, format))
	rep := output.NewConsoleReporter(os.Stdout, format)

	_, err = runner.New(sc, rs, ex, rep).Run()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mksls version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return nil
	}
	manager, err := topics.New(sub, topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		return nil
	}
	return manager.Command(MsgTopicsShort, MsgTopicsLong)
}

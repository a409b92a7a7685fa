package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/using-order/pkg/config"
	"github.com/siyuan-infoblox/using-order/pkg/errors"
	"github.com/siyuan-infoblox/using-order/pkg/formatter"
	"github.com/siyuan-infoblox/using-order/pkg/rules"
	"github.com/siyuan-infoblox/using-order/pkg/version"
)

const (
	UseDescription   = "using-order [flags] PATH"
	ShortDescription = "C# using directive formatter - sorts and groups top-level usings"
	LongDescription  = `using-order is a command-line tool that formats the using directives
at the top of C# source files.

The UsingOrder rule:
1. Sorts usings alphabetically (ordinal), System usings first
2. Separates distinct root namespaces with a blank line
3. Leaves usings inside namespace blocks untouched

UsingOrder is opt-in: enable it with --enable UsingOrder or in a
.usingorder.yaml / .usingorder.toml file found next to PATH or in a
parent directory.

PATH can be either a single C# file or a directory. When a directory is
specified, all .cs files in the directory and subdirectories are processed
recursively, skipping bin, obj and hidden directories.`
)

type options struct {
	configPath     string
	enable         []string
	disable        []string
	standardPrefix string
	jobs           int
	inPlace        bool
	check          bool
	verbose        bool
	noColor        bool
	listRules      bool
	showVersion    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			// If version or rule listing is requested, we don't need a path
			if opts.showVersion || opts.listRules {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (default: nearest .usingorder.yaml, .usingorder.yml or .usingorder.toml)")
	flags.StringSliceVar(&opts.enable, "enable", nil, "Comma-separated list of rules to enable (e.g., UsingOrder)")
	flags.StringSliceVar(&opts.disable, "disable", nil, "Comma-separated list of rules to disable")
	flags.StringVar(&opts.standardPrefix, "standard-prefix", "", "Namespace prefix sorted first by UsingOrder (default \"System\")")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "Number of files processed in parallel (default: number of CPUs)")
	flags.BoolVar(&opts.inPlace, "in-place", false, "Modify files in place instead of printing to stdout")
	flags.BoolVar(&opts.check, "check", false, "List files that need formatting and exit with an error if any do")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging on stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.listRules, "list-rules", false, "List available rules and exit")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	return rootCmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.noColor {
		color.NoColor = true
	}

	// Handle version flag
	if opts.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}

	if opts.listRules {
		return printRules(cmd.OutOrStdout())
	}

	if opts.inPlace && opts.check {
		return fmt.Errorf(errors.ErrMsgConflictingFlags, "check", "in-place")
	}

	path := args[0]
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := loadConfig(opts, path)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	if err := applyFlags(cmd, opts, &cfg); err != nil {
		return err
	}

	selected, err := rules.Select(cfg.Rules, rules.Settings{StandardPrefix: cfg.UsingOrder.StandardPrefix})
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), errors.WarnMsgNoRulesEnabled)
	}
	for _, r := range selected {
		logger.Debug("rule enabled", "rule", r.Info().Name)
	}

	g := formatter.New(formatter.FormatterConfig{
		FilePath:   path, // This will be updated for each file when processing directories
		InPlace:    opts.inPlace,
		Check:      opts.check,
		Rules:      selected,
		Jobs:       cfg.Jobs,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		Logger:     logger,
		Out:        cmd.OutOrStdout(),
	})
	return g.ProcessPath(cmd.Context(), path)
}

func loadConfig(opts *options, path string) (config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}
	return config.Discover(path)
}

// applyFlags overrides config file values with explicitly set flags. Rule
// names are stored under their registered spelling so a flag replaces the
// config entry for the same rule.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) error {
	if cfg.Rules == nil {
		cfg.Rules = map[string]bool{}
	}
	for _, list := range []struct {
		names []string
		on    bool
	}{{opts.enable, true}, {opts.disable, false}} {
		for _, name := range list.names {
			canonical, err := rules.CanonicalName(name)
			if err != nil {
				return err
			}
			cfg.Rules[canonical] = list.on
		}
	}
	if cmd.Flags().Changed("standard-prefix") && opts.standardPrefix != "" {
		cfg.UsingOrder.StandardPrefix = opts.standardPrefix
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	return nil
}

func printRules(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDEFAULT\tDESCRIPTION")
	for _, info := range rules.All() {
		state := "disabled"
		if info.DefaultEnabled {
			state = "enabled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, state, info.Description)
	}
	return tw.Flush()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command. info is the binary's build info, nil when
// it is not available.
func Execute(info *debug.BuildInfo) error {
	version.ApplyBuildInfo(info)
	return newRootCmd().Execute()
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kk-code-lab/qpreview/internal/config"
	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

var version = "dev"

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidUsage = 2
	exitFatalPreview = 3
)

type options struct {
	configPath string
	fullscreen bool
	input      string
	watch      bool
	hidden     bool
	include    []string
	debug      bool
	logFile    string
}

type runFunc func(cfg *config.Config, args []string, stderr io.Writer) error

func newRootCmd(run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "qpreview [flags] FILE|DIR...",
		Short: "Step through files in the system quick-preview window",
		Long: `qpreview opens each file in the platform's quick-look previewer and lets you
move through the list with the arrow keys:

  Right/Down  next file        Left/Up  previous file
  R           reload           Esc/Q    quit

Keys are read system-wide where supported, so they work while the preview
window has focus. A system-wide key is taken away from every other
application, so only the arrows and Escape are grabbed unless letters, Space
or Enter are bound explicitly under [keys] in the config. On Linux the global
hook needs an X11 display and a build with -tags x11. Use --input terminal to
read keys from this terminal instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return apperr.New(apperr.InvalidArgument, "", fmt.Errorf("no files given"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), &opts)
			if err != nil {
				return err
			}
			return run(cfg, args, cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.BoolVarP(&opts.fullscreen, "fullscreen", "f", false, "open previews fullscreen")
	flags.StringVar(&opts.input, "input", config.InputAuto, `key source: "auto", "global" (arrows and Escape unless letters are bound in [keys]) or "terminal"`)
	flags.BoolVarP(&opts.watch, "watch", "w", false, "reload the preview when the current file changes")
	flags.BoolVar(&opts.hidden, "hidden", false, "include hidden files when expanding directories")
	flags.StringSliceVarP(&opts.include, "include", "i", nil, "glob patterns for files taken from directories, e.g. '*.{png,jpg}'")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.StringVar(&opts.logFile, "log-file", "", "write the log to this file")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.New(apperr.InvalidArgument, "", err)
	})
	return cmd
}

// loadConfig reads the config file and applies the flags that were set
// explicitly on top of it.
func loadConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	path, required := opts.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if flags.Changed("fullscreen") {
		cfg.Fullscreen = opts.fullscreen
	}
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("watch") {
		cfg.Watch = opts.watch
	}
	if flags.Changed("hidden") {
		cfg.Hidden = opts.hidden
	}
	if flags.Changed("include") {
		cfg.Include = opts.include
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "", err)
	}
	return cfg, nil
}

// reportError prints err and maps it to an exit code.
func reportError(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "qpreview: %v\n", err)

	switch apperr.KindOf(err) {
	case apperr.InvalidArgument:
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return exitInvalidUsage
	case apperr.InvalidConfig:
		return exitInvalidUsage
	case apperr.PreviewUnavailable:
		return exitFatalPreview
	default:
		return exitFailure
	}
}

package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/planefade/config"
	"github.com/lixenwraith/planefade/pattern"
	"github.com/lixenwraith/planefade/terminal"
)

// flags holds command line values; only flags the user set override the config file
type flags struct {
	configFile  string
	writeConfig string
	duration    time.Duration
	colorMode   string
	backend     string
	pattern     string
	text        string
	defaultBg   bool
	debug       bool
	hold        time.Duration
	stats       bool
}

func main() {
	// Panic Recovery: put the terminal back before printing anything
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPLANEFADE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:          "planefade",
		Short:        "fade terminal images in and out",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEffect(cmd, f, "")
		},
	}

	bindFlags(rootCmd.PersistentFlags(), f)

	for _, effect := range []struct{ name, short string }{
		{"in", "fade the image in from black"},
		{"out", "fade the image out to black"},
		{"pulse", "fade in and out until a quit key is pressed"},
	} {
		name := effect.name
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: effect.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEffect(cmd, f, name)
			},
		})
	}
	rootCmd.AddCommand(newCurveCmd())

	return rootCmd
}

func bindFlags(pf *pflag.FlagSet, f *flags) {
	pf.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&f.writeConfig, "write-config", "", "save the resolved settings to this path and exit")
	pf.DurationVarP(&f.duration, "duration", "d", config.DefaultDuration, "fade duration")
	pf.StringVar(&f.colorMode, "color", "auto", "color mode: auto, truecolor, 256, 16, none")
	pf.StringVar(&f.backend, "backend", config.DefaultBackend, "output: ansi, tcell or tea")
	pf.StringVarP(&f.pattern, "pattern", "p", config.DefaultPattern, fmt.Sprintf("image to fade: %v", pattern.Names()))
	pf.StringVarP(&f.text, "text", "t", "", "text drawn over the image")
	pf.BoolVar(&f.defaultBg, "default-bg", false, "keep the terminal background")
	pf.BoolVar(&f.debug, "debug", false, "write debug logs to the log directory")
	pf.DurationVar(&f.hold, "hold", 0, "keep the final frame on screen this long (q quits early)")
	pf.BoolVar(&f.stats, "stats", false, "print animation counters on exit")
}

// resolveConfig layers defaults, the config file, explicitly set flags and the subcommand
func resolveConfig(cmd *cobra.Command, f *flags, effect string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("duration") {
		cfg.Duration = f.duration
	}
	if set("color") {
		cfg.ColorMode = f.colorMode
	}
	if set("backend") {
		cfg.Backend = f.backend
	}
	if set("pattern") {
		cfg.Pattern = f.pattern
	}
	if set("text") {
		cfg.Text = f.text
	}
	if set("default-bg") {
		cfg.DefaultBg = f.defaultBg
	}
	if set("debug") {
		cfg.Debug = f.debug
	}
	if effect != "" {
		cfg.Effect = effect
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

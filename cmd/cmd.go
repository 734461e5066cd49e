package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"github.com/robinovitch61/uiscroll/internal"
	"github.com/robinovitch61/uiscroll/internal/constants"
	"github.com/robinovitch61/uiscroll/internal/keymap"
	"github.com/robinovitch61/uiscroll/internal/scroll"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"k8s.io/utils/ptr"
)

var (
	// Version is public so users can optionally specify or override the version
	// at build time by passing in ldflags, e.g.
	//   go build -ldflags "-X github.com/robinovitch61/uiscroll/cmd.Version=vX.Y.Z"
	Version = ""
)

const envPrefix = "UISCROLL"

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, isInt, defaultIfBool                        bool
	defaultIfInt                                        int
}

var (
	rootNameToArg = map[string]arg{
		"buffer-size": {
			cliShort:      "b",
			cfgFileEnvVar: "buffer_size",
			description:   `Number of items requested per direction per load`,
			isInt:         true,
			defaultIfInt:  scroll.DefaultSettings().BufferSize,
		},
		"config": {
			cliShort:    "c",
			description: `TOML config file path. Defaults to $XDG_CONFIG_HOME/uiscroll/config.toml when present`,
		},
		"failure-rate": {
			cfgFileEnvVar: "failure_rate",
			description:   `Share of requests to the numbers source that fail, between 0 and 1. Default 0`,
		},
		"help": {
			description: `Print usage`,
		},
		"horizontal": {
			cfgFileEnvVar: "horizontal",
			description:   `If present, lay items out side by side and scroll along the x axis. Default false`,
			isBool:        true,
		},
		"last": {
			cfgFileEnvVar: "last",
			description:   `Highest index the numbers and stream sources serve. Defaults to endless`,
		},
		"latency": {
			cliShort:      "l",
			cfgFileEnvVar: "latency",
			description:   `Simulated source latency, e.g. 50ms, 1s`,
			defaultString: constants.DefaultLatency.String(),
		},
		"max-index": {
			cfgFileEnvVar: "max_index",
			description:   `Highest index ever requested. Defaults to unbounded`,
		},
		"min-index": {
			cfgFileEnvVar: "min_index",
			description:   `Lowest index ever requested, or "none" for unbounded. Default 0`,
		},
		"padding": {
			cfgFileEnvVar: "padding",
			description:   `Number of offscreen items kept on each side of the viewport`,
			isInt:         true,
			defaultIfInt:  scroll.DefaultSettings().Padding,
		},
		"path": {
			cliShort:      "p",
			cfgFileEnvVar: "path",
			description:   `File to scroll through with the file source`,
		},
		"source": {
			cliShort:      "s",
			cfgFileEnvVar: "source",
			description: fmt.Sprintf(
				`Item source: %s, %s or %s`,
				internal.SourceNumbers,
				internal.SourceStream,
				internal.SourceFile,
			),
			defaultString: internal.SourceNumbers,
		},
		"start-index": {
			cliShort:      "i",
			cfgFileEnvVar: "start_index",
			description:   `Index of the first item loaded`,
			isInt:         true,
		},
	}

	flagNames = []string{
		"buffer-size",
		"config",
		"failure-rate",
		"horizontal",
		"last",
		"latency",
		"max-index",
		"min-index",
		"padding",
		"path",
		"source",
		"start-index",
	}

	description = fmt.Sprintf(`uiscroll %s
Leo Robinovitch <leorobinovitch@gmail.com>

uiscroll is a virtual scroller for the terminal. It keeps only the items around the viewport in memory and
loads more from its source as you scroll in either direction

Home page: https://github.com/robinovitch61/uiscroll`,
		getVersion(),
	)
)

// Execute executes the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "uiscroll",
		Short: "uiscroll: virtual scrolling in the terminal",
		Long:  description,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v, rootNameToArg)
		},
		RunE:         mainEntrypoint,
		Version:      getVersion(),
		SilenceUsage: true,
	}

	cliLong := "help"
	rootCmd.PersistentFlags().BoolP(cliLong, rootNameToArg[cliLong].cliShort, rootNameToArg[cliLong].defaultIfBool, rootNameToArg[cliLong].description)
	for _, cliLong = range flagNames {
		c := rootNameToArg[cliLong]
		if c.isBool {
			rootCmd.PersistentFlags().BoolP(cliLong, c.cliShort, c.defaultIfBool, c.description)
		} else if c.isInt {
			rootCmd.PersistentFlags().IntP(cliLong, c.cliShort, c.defaultIfInt, c.description)
		} else {
			rootCmd.PersistentFlags().StringP(cliLong, c.cliShort, c.defaultString, c.description)
		}
	}
	rootCmd.SetVersionTemplate(`{{printf "uiscroll %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show uiscroll version")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE:  printConfig,
	})
	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper, nameToArg map[string]arg) error {
	// bind viper to env vars
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := readConfigFile(cmd, v); err != nil {
		return err
	}
	return bindFlags(cmd, v, nameToArg)
}

func readConfigFile(cmd *cobra.Command, v *viper.Viper) error {
	path := cmd.Flags().Lookup("config").Value.String()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uiscroll", "config.toml")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper, nameToArg map[string]arg) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Determine the naming convention of the flags when represented in the config file
		viperName := nameToArg[f.Name].cfgFileEnvVar
		if viperName == "" || err != nil {
			return
		}

		// Apply the viper config value to the flag when the flag is not manually specified
		// and viper has a value from the config file or env var
		if !f.Changed && v.IsSet(viperName) {
			val := v.Get(viperName)
			if setErr := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); setErr != nil {
				err = fmt.Errorf("setting flag %s from config: %w", f.Name, setErr)
			}
		}
	})
	return err
}

func mainEntrypoint(cmd *cobra.Command, _ []string) error {
	c, err := getConfig(cmd)
	if err != nil {
		return err
	}
	program := tea.NewProgram(internal.InitialModel(c), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error on uiscroll startup: %w", err)
	}
	return nil
}

// effectiveConfig is what the config command prints. Its keys are the ones the config file accepts
type effectiveConfig struct {
	Source      string  `toml:"source"`
	Path        string  `toml:"path,omitempty"`
	Latency     string  `toml:"latency"`
	FailureRate float64 `toml:"failure_rate"`
	Last        *int    `toml:"last,omitempty"`
	StartIndex  int     `toml:"start_index"`
	BufferSize  int     `toml:"buffer_size"`
	Padding     int     `toml:"padding"`
	Horizontal  bool    `toml:"horizontal"`
	MinIndex    *int    `toml:"min_index,omitempty"`
	MaxIndex    *int    `toml:"max_index,omitempty"`
}

func printConfig(cmd *cobra.Command, _ []string) error {
	c, err := getConfig(cmd)
	if err != nil {
		return err
	}
	b, err := toml.Marshal(effectiveConfig{
		Source:      c.Source,
		Path:        c.Path,
		Latency:     c.Latency.String(),
		FailureRate: c.FailureRate,
		Last:        c.Last,
		StartIndex:  c.Settings.StartIndex,
		BufferSize:  c.Settings.BufferSize,
		Padding:     c.Settings.Padding,
		Horizontal:  c.Settings.Horizontal,
		MinIndex:    c.Settings.MinIndex,
		MaxIndex:    c.Settings.MaxIndex,
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

func getInt(cmd *cobra.Command, name string) (int, error) {
	i, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return i, nil
}

// getOptionalIndex parses an index flag where the empty string and "none" mean unset
func getOptionalIndex(cmd *cobra.Command, name string) (*int, error) {
	s := strings.TrimSpace(cmd.Flags().Lookup(name).Value.String())
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return ptr.To(i), nil
}

func getMinIndex(cmd *cobra.Command) (*int, error) {
	if cmd.Flags().Lookup("min-index").Value.String() == "" {
		return scroll.DefaultSettings().MinIndex, nil
	}
	return getOptionalIndex(cmd, "min-index")
}

func getLatency(cmd *cobra.Command) (time.Duration, error) {
	latency := cmd.Flags().Lookup("latency").Value.String()
	if latency == "" {
		return constants.DefaultLatency, nil
	}
	d, err := time.ParseDuration(latency)
	if err != nil {
		return 0, fmt.Errorf("error parsing latency: %w", err)
	}
	return d, nil
}

func getFailureRate(cmd *cobra.Command) (float64, error) {
	rate := cmd.Flags().Lookup("failure-rate").Value.String()
	if rate == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing failure rate: %w", err)
	}
	return f, nil
}

func getSettings(cmd *cobra.Command) (scroll.Settings, error) {
	var errs []error
	settings := scroll.DefaultSettings()
	var err error
	settings.StartIndex, err = getInt(cmd, "start-index")
	errs = append(errs, err)
	settings.BufferSize, err = getInt(cmd, "buffer-size")
	errs = append(errs, err)
	settings.Padding, err = getInt(cmd, "padding")
	errs = append(errs, err)
	settings.Horizontal = cmd.Flags().Lookup("horizontal").Value.String() == "true"
	settings.MinIndex, err = getMinIndex(cmd)
	errs = append(errs, err)
	settings.MaxIndex, err = getOptionalIndex(cmd, "max-index")
	errs = append(errs, err)
	return settings, multierr.Combine(errs...)
}

func getConfig(cmd *cobra.Command) (internal.Config, error) {
	settings, err := getSettings(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	latency, err := getLatency(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	failureRate, err := getFailureRate(cmd)
	if err != nil {
		return internal.Config{}, err
	}
	last, err := getOptionalIndex(cmd, "last")
	if err != nil {
		return internal.Config{}, err
	}
	c := internal.Config{
		KeyMap:      keymap.DefaultKeyMap(),
		Source:      cmd.Flags().Lookup("source").Value.String(),
		Path:        cmd.Flags().Lookup("path").Value.String(),
		Settings:    settings,
		Latency:     latency,
		FailureRate: failureRate,
		Last:        last,
		Version:     getVersion(),
	}
	if err := c.Validate(); err != nil {
		return internal.Config{}, err
	}
	return c, nil
}

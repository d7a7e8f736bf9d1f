package main

import (
	"fmt"
	"io"

	configpkg "github.com/minhyannv/gate-agent-go/pkg/config"
	"github.com/minhyannv/gate-agent-go/pkg/interactive"
	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/minhyannv/gate-agent-go/pkg/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the resolved configuration and process streams shared by the
// subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v          *viper.Viper
	configFile string
	cfg        configpkg.Config
	logger     loggerpkg.Logger
	prompter   *interactive.Terminal
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		in:     in,
		out:    out,
		errOut: errOut,
		v:      viper.New(),
		logger: loggerpkg.NopLogger{},
	}

	root := &cobra.Command{
		Use:   "gate-agent",
		Short: "Airline gate agent with weather and reservation skills",
		Long: `gate-agent keeps AI backend and API credentials in a local settings file
and runs a chat session where the model can look up a reservation, change
seats and fetch the weather forecast.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	defaults := configpkg.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.String("settings", defaults.SettingsPath, "path of the credential settings file")
	flags.Bool("azure", defaults.UseAzure, "use Azure OpenAI (false selects OpenAI)")
	flags.Bool("store-on-file", defaults.StoreOnFile, "persist collected settings to the settings file")
	flags.String("fixtures", "", "reservation fixture file, JSON or YAML (default built-in pool)")
	flags.Int("max-turns", defaults.MaxTurns, "max tool-call turns per message")
	flags.Bool("verbose", defaults.Verbose, "verbose logging to stderr")

	bindings := map[string]string{
		configpkg.KeySettingsPath: "settings",
		configpkg.KeyUseAzure:     "azure",
		configpkg.KeyStoreOnFile:  "store-on-file",
		configpkg.KeyFixturesPath: "fixtures",
		configpkg.KeyMaxTurns:     "max-turns",
		configpkg.KeyVerbose:      "verbose",
	}
	for key, name := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newChatCmd(a),
		newSetupCmd(a),
		newResetCmd(a),
		newTokenCmd(a),
		newWeatherCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := configpkg.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = loggerpkg.NewComponentLogger(a.errOut, "gate-agent")
	loggerpkg.Debug(cfg.Verbose, a.logger, "config loaded", map[string]any{
		"settings_path": cfg.SettingsPath,
		"use_azure":     cfg.UseAzure,
		"store_on_file": cfg.StoreOnFile,
		"fixtures_path": cfg.FixturesPath,
		"max_turns":     cfg.MaxTurns,
	})
	return nil
}

// facade returns the settings facade prompting on the app's streams.
func (a *app) facade() *settings.Facade {
	if a.prompter == nil {
		a.prompter = &interactive.Terminal{In: a.in, Out: a.out}
	}
	return settings.New(
		settings.NewFileStore(a.cfg.SettingsPath),
		a.prompter,
		settings.WithStatusWriter(a.out),
		settings.WithLogger(a.logger),
		settings.WithStoreOnFile(a.cfg.StoreOnFile),
	)
}

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Collect and store AI backend and API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.facade().Setup(cmd.Context(), a.cfg.UseAzure)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "Configured %s backend with model %s.\n", rec.Provider, rec.Model)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.facade().Reset()
			return nil
		},
	}
}

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive gate agent session (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}
}

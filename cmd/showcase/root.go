package main

import (
	"os"

	"github.com/spf13/cobra"

	"ProductShowcase/internal/config"
)

type rootOptions struct {
	ConfigPath string
	LogLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "showcase",
		Short:         "Fake product showcase",
		Long:          "A six-product showcase with search, a detail view and a cart counter, served over HTTP or in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newTUICommand(opts))

	return cmd
}

// load resolves the config file, then lets explicit flags win over it.
func (o *rootOptions) load() (config.Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return cfg, nil
}

package main

import (
	"github.com/spf13/cobra"

	"keepnotes/internal/config"
)

func newConfigCommand(wiring commandWiring) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if !defaults {
			dataDir := wiring.opts.dataDir
			if dataDir == "" {
				dir, err := config.DataDir()
				if err != nil {
					return err
				}
				dataDir = dir
			}
			loaded, err := loadConfig(*wiring.opts, dataDir)
			if err != nil {
				return err
			}
			cfg = loaded
			if wiring.opts.backend != "" {
				cfg.Storage.Backend = wiring.opts.backend
			}
		}
		raw, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = wiring.stdout.Write(raw)
		return err
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print default config values")
	return cmd
}

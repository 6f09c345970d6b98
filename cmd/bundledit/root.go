package main

import (
	"fmt"

	"bundledit/internal/config"
	"bundledit/internal/editor"
	"bundledit/internal/glossary"
	"bundledit/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	glossaryFile string
	debugFlag    bool
	cfg          *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bundledit",
		Short:   "A localization bundle editor",
		Long:    `Bundledit opens localization CSV bundles for browsing, filtering and translating, with glossary term lookups along the way.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("Warning: could not load config: %v. Using default settings.\n", configErr)
				cfg = config.New()
			}

			if cmd.Flags().Changed("debug") {
				cfg.Settings.Debug = debugFlag
			}
			log.SetDebug(cfg.Settings.Debug)

			if glossaryFile != "" {
				cfg.Files.Glossary = glossaryFile
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/bundledit/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&glossaryFile, "glossary", "g", "", "glossary document (overrides the configured one)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable verbose logging")

	rootCmd.AddCommand(NewGuiCmd())
	rootCmd.AddCommand(NewTuiCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewGlossaryCmd())

	return rootCmd
}

// newEngine builds the editor engine the presentation commands share, with
// the configured glossary installed. A broken glossary is reported and
// skipped; the editor runs without term highlighting.
func newEngine() *editor.Engine {
	engine := editor.New(cfg)
	if cfg.Files.Glossary != "" {
		g, err := glossary.LoadFile(cfg.Files.Glossary)
		if err != nil {
			log.Warnf("glossary unavailable: %v", err)
		} else {
			engine.SetGlossary(g)
		}
	}
	return engine
}

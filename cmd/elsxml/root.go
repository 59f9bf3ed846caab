package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "elsxml",
	Short: "Convert Elsevier XML articles",
	Long:  `Parse Elsevier full-text retrieval responses into titles, headings, paragraphs, tables, figures, citations and metadata.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

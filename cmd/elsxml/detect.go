package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/elsxml/elsevier"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Report whether files are Elsevier articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("read failed")
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", path, elsevier.Detect(data, path))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

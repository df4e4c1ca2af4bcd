// Command magika is a thin wrapper around the magika package: it
// identifies the content type of each file given on the command line.
// It is illustrative, not a replacement for the upstream magika CLI's
// full human/JSON/JSONL formatter suite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-magika/magika/magika"
	"github.com/go-magika/magika/obslog"
)

const (
	assetsDirEnv = "MAGIKA_ASSETS_DIR"
	modelNameEnv = "MAGIKA_MODEL"
)

var (
	assetsDir string
	modelName string
	asJSON    bool
	verbose   bool
	logJSON   bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "magika [files...]",
		Short: "Identify the content type of files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIdentify,
	}
	cmd.Flags().StringVar(&assetsDir, "assets-dir", os.Getenv(assetsDirEnv), "path to the Magika model assets (or "+assetsDirEnv+")")
	cmd.Flags().StringVar(&modelName, "model", os.Getenv(modelNameEnv), "model name to load (or "+modelNameEnv+")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON result object per file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log scanner construction and decision events to stderr")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "emit --verbose logs as newline-delimited JSON instead of console-formatted text")
	return cmd
}

func runIdentify(cmd *cobra.Command, args []string) error {
	if assetsDir == "" {
		return fmt.Errorf("--assets-dir (or %s) is required", assetsDirEnv)
	}
	if modelName == "" {
		return fmt.Errorf("--model (or %s) is required", modelNameEnv)
	}

	log := obslog.Nop()
	if verbose {
		log = obslog.Default()
		if logJSON {
			log = obslog.New(cmd.ErrOrStderr())
		}
	}

	s, err := magika.Open(assetsDir, modelName, magika.WithLogger(log))
	if err != nil {
		return fmt.Errorf("open scanner: %w", err)
	}

	results, err := s.IdentifyPaths(args)
	if err != nil {
		return fmt.Errorf("identify paths: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if asJSON {
			b, err := res.MarshalJSON()
			if err != nil {
				return fmt.Errorf("marshal result for %q: %w", res.Path, err)
			}
			fmt.Fprintln(out, string(b))
			continue
		}
		if res.Prediction == nil {
			fmt.Fprintf(out, "%s: %s\n", res.Path, res.Status)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", res.Path, res.Prediction.Output.Label)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

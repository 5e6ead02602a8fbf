package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/booking-acceptance/internal/report"
	"github.com/celestiaorg/booking-acceptance/internal/steps"
)

// Run flag names
const (
	flagPaths       = "paths"
	flagTags        = "tags"
	flagFormat      = "format"
	flagConcurrency = "concurrency"
	flagStrict      = "strict"
	flagRandomize   = "randomize"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the feature suite",
	Example: `  booking-acceptance run --env test
  booking-acceptance run --tags "@smoke" --format progress --concurrency 4`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := cmd.Flags().GetStringSlice(flagPaths)
		if err != nil {
			return fmt.Errorf("error getting paths flag: %w", err)
		}
		tags, _ := cmd.Flags().GetString(flagTags)
		format, _ := cmd.Flags().GetString(flagFormat)
		concurrency, _ := cmd.Flags().GetInt(flagConcurrency)
		strict, _ := cmd.Flags().GetBool(flagStrict)
		randomize, _ := cmd.Flags().GetInt64(flagRandomize)

		suite := steps.NewSuite(cfg, report.NewLogSink(), steps.RunOptions{
			Paths:       paths,
			Tags:        tags,
			Format:      format,
			Concurrency: concurrency,
			Strict:      strict,
			Randomize:   randomize,
			Output:      cmd.OutOrStdout(),
		})
		if status := suite.Run(); status != 0 {
			return fmt.Errorf("feature run failed with status %d", status)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSlice(flagPaths, []string{"features"}, "Feature files or directories to run")
	runCmd.Flags().StringP(flagTags, "t", "", "Tag expression selecting scenarios, e.g. \"@smoke && ~@wip\"")
	runCmd.Flags().StringP(flagFormat, "f", "pretty", "Output format: pretty, progress, cucumber, junit")
	runCmd.Flags().IntP(flagConcurrency, "c", 1, "Number of scenarios run in parallel")
	runCmd.Flags().Bool(flagStrict, true, "Fail on pending and undefined steps")
	runCmd.Flags().Int64(flagRandomize, 0, "Seed for random scenario order, -1 picks one, 0 disables")
}

// GetRunCmd returns the run command
func GetRunCmd() *cobra.Command {
	return runCmd
}

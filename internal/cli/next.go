package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orangeswim/cronner"
)

func newNextCommand(opts Options) *cobra.Command {
	var (
		search searchFlags
		count  int
	)
	cmd := &cobra.Command{
		Use:   "next RULE",
		Short: "Print the next times a rule fires",
		Example: `  cronner next "0 30 9 * * 1-5"
  cronner next --count 5 --from 2024-06-15T12:00:00Z 0 0 12 1,15 '*' 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			from, err := search.start(opts.Clock)
			if err != nil {
				return err
			}
			rule, err := newCompiler(opts.Logger, search.maxIterations).Compile(ruleText(args))
			if err != nil {
				return err
			}
			opts.Logger.Debug("searching", "rule", rule.String(), "from", from, "count", count)

			times := cronner.NextN(rule, from, count)
			if len(times) == 0 {
				return ErrNotFound
			}
			out := cmd.OutOrStdout()
			for _, t := range times {
				fmt.Fprintln(out, t.Format(time.RFC3339))
			}
			return nil
		},
	}
	search.register(cmd.Flags())
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of firing times to print")
	return cmd
}

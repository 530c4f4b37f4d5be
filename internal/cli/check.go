package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orangeswim/cronner"
)

var fieldOrder = []cronner.Field{
	cronner.Second,
	cronner.Minute,
	cronner.Hour,
	cronner.DayOfMonth,
	cronner.Month,
	cronner.DayOfWeek,
	cronner.Year,
}

func newCheckCommand(opts Options) *cobra.Command {
	var search searchFlags
	cmd := &cobra.Command{
		Use:   "check RULE",
		Short: "Validate a rule and explain how it is read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := search.start(opts.Clock)
			if err != nil {
				return err
			}
			compiler := newCompiler(opts.Logger, search.maxIterations)
			result := compiler.Analyze(ruleText(args), from)
			writeAnalysis(cmd.OutOrStdout(), result)
			return result.Error
		},
	}
	search.register(cmd.Flags())
	return cmd
}

func writeAnalysis(out io.Writer, result cronner.RuleAnalysis) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "valid:\t%t\n", result.Valid)
	if result.Error != nil {
		fmt.Fprintf(w, "error:\t%v\n", result.Error)
	}
	for _, f := range fieldOrder {
		if text, ok := result.Fields[f.String()]; ok {
			fmt.Fprintf(w, "%s:\t%s\n", f, text)
		}
	}
	if !result.Valid {
		return
	}
	fmt.Fprintf(w, "either:\t%t\n", result.Either)
	if result.Found {
		fmt.Fprintf(w, "next:\t%s\n", result.NextRun.Format(time.RFC3339))
	} else {
		fmt.Fprintf(w, "next:\tnone\n")
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning:\t%s\n", warning)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orangeswim/cronner/internal/rulefile"
)

func newFileCommand(opts Options) *cobra.Command {
	var (
		search searchFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "file PATH",
		Short: "Evaluate every rule of a YAML or JSONC rule file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("--output must be text or json, got %q", output)
			}
			from, err := search.start(opts.Clock)
			if err != nil {
				return err
			}

			file, err := rulefile.ReadFile(args[0])
			if err != nil {
				return err
			}
			compiled, err := file.Compile(newCompiler(opts.Logger, search.maxIterations))
			if err != nil {
				return err
			}
			opts.Logger.Debug("rule file compiled", "path", args[0], "rules", len(compiled))

			results, err := rulefile.Evaluate(cmd.Context(), compiled, from)
			if err != nil {
				return err
			}

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNEXT\tRULE")
			for _, r := range results {
				next := "-"
				if r.Found {
					next = r.Next.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, next, r.Rule)
			}
			return w.Flush()
		},
	}
	search.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}

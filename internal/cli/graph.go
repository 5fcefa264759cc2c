package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewGraphCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <job.yaml>",
		Short: "Print the filter_complex graph for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, plan, err := composeJob(deps, flags, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), plan.String())
			return err
		},
	}

	return cmd
}

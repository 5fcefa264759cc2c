package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"call-compositor/internal/encoder"
)

func NewArgsCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "args <job.yaml>",
		Short: "Print the ffmpeg command line that renders a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, plan, err := composeJob(deps, flags, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = job.Output
			}
			if output == "" {
				return errors.New("no output file: pass -o or set output in the job file")
			}

			argv, err := encoder.Args(plan, job.Artifacts(), output)
			if err != nil {
				return err
			}

			quoted := make([]string, len(argv))
			for i, a := range argv {
				quoted[i] = shellQuote(a)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ffmpeg "+strings.Join(quoted, " "))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the job's output)")

	return cmd
}

// shellQuote single-quotes s unless it is made only of characters a POSIX
// shell passes through unchanged.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+@%", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

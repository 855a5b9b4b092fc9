package cmd

import (
	"fmt"

	"github.com/sarchlab/pagesim/report"
	"github.com/spf13/cobra"
)

func newRunCmd(g *globalOptions) *cobra.Command {
	in := &inputOptions{}
	out := &outputOptions{}

	var summary bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Compare the policies over one reference string.",
		Long: "`run --refs \"7 0 1 2 0 3\" --frames 3` prints the page faults " +
			"and the frame contents of every policy.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds, err := in.kinds()
			if err != nil {
				return err
			}

			refs, frames, err := in.input(cmd, g)
			if err != nil {
				return err
			}

			err = out.open(g)
			if err != nil {
				return err
			}
			defer out.close()

			r := out.newRunner(g, kinds)

			results, err := r.RunAll(refs, frames)
			if err != nil {
				return err
			}

			presenter := report.NewPresenter().WithHitCounter(out.counter)

			err = presenter.Present(cmd.OutOrStdout(), results)
			if err != nil {
				return err
			}

			if summary {
				fmt.Fprintln(cmd.OutOrStdout())
				return presenter.Summary(cmd.OutOrStdout(), results)
			}

			return nil
		},
	}

	in.register(runCmd)
	out.register(runCmd)
	runCmd.Flags().BoolVar(&summary, "summary", false,
		"Print a summary table after the frame tables")

	return runCmd
}

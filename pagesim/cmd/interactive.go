package cmd

import (
	"github.com/sarchlab/pagesim/session"
	"github.com/spf13/cobra"
)

func newInteractiveCmd(g *globalOptions) *cobra.Command {
	in := &inputOptions{}
	out := &outputOptions{}

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Ask for reference strings and compare the policies until told to stop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds, err := in.kinds()
			if err != nil {
				return err
			}

			err = out.open(g)
			if err != nil {
				return err
			}
			defer out.close()

			r := out.newRunner(g, kinds)

			return session.New(r, cmd.InOrStdin(), cmd.OutOrStdout()).
				WithLimits(g.cfg.Limits).
				WithRand(in.newRand(cmd, g)).
				WithLogger(g.logger).
				Run()
		},
	}

	interactiveCmd.Flags().Int64Var(&in.seed, "seed", 0,
		"Seed of the random reference strings")
	interactiveCmd.Flags().StringVar(&in.policies, "policies", defaultPolicies,
		"Comma separated policies to compare")
	out.register(interactiveCmd)

	return interactiveCmd
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	in := &inputOptions{}
	out := &outputOptions{}

	var (
		port        int
		openBrowser bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the policies and their results over HTTP.",
		Long: "`serve` starts the monitoring server. If a reference string is " +
			"given, it is compared first. New comparisons can be requested " +
			"from the web page or through /api/run.",
		Args: cobra.NoArgs,
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

			if !cmd.Flags().Changed("port") {
				port = g.cfg.MonitorPort
			}

			m := monitoring.NewMonitor(r).
				WithLogger(g.logger).
				WithLimits(g.cfg.Limits).
				WithRand(in.newRand(cmd, g)).
				WithPortNumber(port)

			if in.hasInput() {
				refs, frames, err := in.input(cmd, g)
				if err != nil {
					return err
				}

				results, err := r.RunAll(refs, frames)
				if err != nil {
					return err
				}

				m.Observe(refs, frames, results)
			}

			url, err := m.StartServer()
			if err != nil {
				return err
			}
			defer m.StopServer()

			fmt.Fprintf(cmd.OutOrStdout(), "Monitoring policies with %s\n", url)

			if openBrowser {
				err = browser.OpenURL(url)
				if err != nil {
					g.logger.Warn("cannot open browser", "error", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			<-ctx.Done()

			return nil
		},
	}

	in.register(serveCmd)
	out.register(serveCmd)
	serveCmd.Flags().IntVar(&port, "port", 0,
		"Port of the monitoring server, 0 picks a free port")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false,
		"Open the monitoring page in a browser")

	return serveCmd
}

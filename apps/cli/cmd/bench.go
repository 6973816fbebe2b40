package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/objkit/objkit/packages/bench"
)

var (
	benchRequestsFlag int
	benchRateFlag     float64
	benchHeaderFlags  []string
	benchNoColorFlag  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <url>",
	Short: "Measure request latency against an endpoint",
	Long: `Issue a sequence of GET requests against a storage endpoint and
report latency percentiles.

Examples:
  objkit bench https://storage.example.com/object/bucket/a.png
  objkit bench /object/bucket/a.png -n 200 --rate 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := newRunContext(benchNoColorFlag, false)
		if err != nil {
			return err
		}
		defer rc.close()

		headers, err := parseHeaders(benchHeaderFlags)
		if err != nil {
			return err
		}

		runner := bench.New(rc.exec)
		report, err := runner.Run(cmd.Context(), bench.Config{
			URL:      rc.resolveURL(args[0]),
			Headers:  headers,
			Requests: benchRequestsFlag,
			Rate:     benchRateFlag,
		})
		if err != nil {
			return err
		}

		rc.out.FormatBenchReport(report)
		if report.Errors > 0 {
			os.Exit(ExitCallFailure)
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchRequestsFlag, "requests", "n", 50, "Number of requests to issue")
	benchCmd.Flags().Float64VarP(&benchRateFlag, "rate", "r", 0, "Requests per second (0 = unpaced)")
	benchCmd.Flags().StringArrayVarP(&benchHeaderFlags, "header", "H", nil, `Request header, "Key: Value" (repeatable)`)
	benchCmd.Flags().BoolVar(&benchNoColorFlag, "no-color", false, "Disable colored output")
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yurifrl/burnrate/pkg/config"
	"github.com/yurifrl/burnrate/pkg/models"
	"github.com/yurifrl/burnrate/pkg/service"
)

var version = "dev"

type options struct {
	cfgFile   string
	statement string
	out       string
	asOf      string
	csv       string
	summary   string
	dump      bool
	verbose   bool
}

// legacyFlags keeps the flag names of the original statement script working.
func legacyFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "chase":
		name = "statement"
	case "chase-out":
		name = "out"
	}
	return pflag.NormalizedName(name)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "burnrate",
		Short: "Monthly spend and average burn rate from a bank statement",
		Long: `burnrate reads a bank statement export, sums outgoing spend per month over
the last twelve complete calendar months and writes an HTML report with the
average monthly spend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(legacyFlags)
	flags.StringVarP(&opts.statement, "statement", "s", "", "Bank statement export (CSV or XLS)")
	flags.StringVarP(&opts.out, "out", "o", "", "HTML output path (default <out-dir>/chase_stmt.html)")
	flags.StringVar(&opts.asOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	flags.StringVar(&opts.csv, "csv", "", "Also write monthly totals as CSV")
	flags.StringVar(&opts.summary, "summary", "", "Also write a YAML summary")
	flags.BoolVar(&opts.dump, "dump", false, "Print the computed report to stderr")
	flags.Bool("chart", false, "Write a PNG chart next to the HTML report")
	flags.String("out-dir", "", "Directory for the default output path")
	flags.String("template-dir", "", "Directory with report templates")
	flags.String("title", "", "Report title")
	flags.String("currency", "", "Currency symbol")
	flags.StringSlice("date-layout", nil, "Posting date layouts, Go reference time syntax")
	_ = rootCmd.MarkFlagRequired("statement")

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "Config file (default is burnrate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "burnrate", version)
		},
	})

	return rootCmd
}

func runReport(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Build(opts.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	level := cfg.Level()
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "burnrate",
		Level:           level,
	})

	var now time.Time
	if opts.asOf != "" {
		now, err = models.ParseDate(opts.asOf, []string{time.DateOnly})
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
	}

	processor, err := service.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}

	res, err := processor.Run(service.Options{
		StatementPath: opts.statement,
		OutputPath:    opts.out,
		CSVPath:       opts.csv,
		SummaryPath:   opts.summary,
		Now:           now,
	})
	if err != nil {
		return err
	}

	if opts.dump {
		pp.Fprintln(cmd.ErrOrStderr(), res.Report)
	}

	printSummary(cmd.OutOrStdout(), res.Report, cfg.Currency)
	if res.DefaultPath {
		fmt.Fprintf(cmd.OutOrStdout(), "Writing statement to %s\n", res.OutputPath)
	}
	return nil
}

func printSummary(w io.Writer, rep *models.Report, currency string) {
	monthStyle := lipgloss.NewStyle().Width(16)
	amountStyle := lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
	burnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // green
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow

	for _, b := range rep.Buckets {
		fmt.Fprintln(w, monthStyle.Render(b.Label)+amountStyle.Render(currency+b.Spend.StringFixed(2)))
	}
	if !rep.HasData() {
		fmt.Fprintln(w, warnStyle.Render("No qualifying transactions in the last 12 complete months"))
		return
	}
	fmt.Fprintln(w, monthStyle.Render("Average burn")+burnStyle.Render(amountStyle.Render(currency+rep.AverageBurn.StringFixed(2))))
	for _, warning := range rep.Warnings {
		fmt.Fprintln(w, warnStyle.Render("! "+warning))
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

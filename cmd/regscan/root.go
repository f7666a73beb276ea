package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"regscan/internal/analyze"
	"regscan/internal/console"
	"regscan/internal/regress"
	"regscan/internal/tally"
)

const optionalArgsHelp = `Optional arguments:
  --config <name>  Only analyse the regression results of this configuration.
  --fast_search    Search the short status file of each run rather than the
                   full log file. A status file is typically 80-100 lines,
                   a log file can be hundreds of thousands, so this is much
                   faster. Searching the full logs gives more accurate numbers.
  -v, --verbose    Print progress while the regression is scanned.`

type runOptions struct {
	config     string
	fastSearch bool
	reportPath string
	style      string
}

var runFlags runOptions

// newRootCmd builds a fresh command tree and resets all flag state.
func newRootCmd() *cobra.Command {
	runFlags = runOptions{}
	globalFlags = globalOptions{}

	root := &cobra.Command{
		Use:   "regscan",
		Short: "Tally the error signatures of a regression",
		Long: `regscan analyses the results of a regression. It returns every error
signature (mark or ID) that occurred in the regression with its count.

Call it in the repository directory or one of its subdirectories
(e.g. the build directory).

` + optionalArgsHelp,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: runAnalyze,
	}

	f := root.Flags()
	f.StringVar(&runFlags.config, "config", "", "Only analyse this configuration")
	f.BoolVar(&runFlags.fastSearch, "fast_search", false, "Scan the short status files instead of the full logs")
	f.StringVar(&runFlags.reportPath, "report", "", "Also write the report to this file")
	f.StringVar(&runFlags.style, "style", "plain", "Report style: plain, table or markdown")

	addGlobalFlags(root)
	root.AddCommand(newConfigsCmd(), newServeCmd())
	return root
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	style, err := tally.ParseStyle(runFlags.style)
	if err != nil {
		return err
	}
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	say := console.New(cmd.OutOrStdout(), globalFlags.verbose, env.settings)

	say.Say(console.Opening, cmd.Root().Name())
	if cmd.Flags().NFlag() == 0 {
		say.Say(console.NoArgs)
	}
	if globalFlags.verbose {
		say.Say(console.VerboseEnabled)
	}
	if runFlags.config != "" {
		say.Say(console.ConfigSupplied, runFlags.config)
	}
	mode := regress.FullLog
	if runFlags.fastSearch {
		mode = regress.FastSearch
		say.Say(console.FastSearch)
	}

	p, err := analyze.New(env.settings, say)
	if err != nil {
		return err
	}
	res, err := p.Run(env.cwd, analyze.Options{Config: runFlags.config, Mode: mode})
	if err != nil {
		say.Fatal(err)
		return &reportedError{err: err}
	}

	var report bytes.Buffer
	if err := res.Tally.Render(&report, style); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	say.Say(console.JobDone)
	if _, err := cmd.OutOrStdout().Write(report.Bytes()); err != nil {
		return err
	}
	if globalFlags.verbose {
		say.Summary(res.Stats)
	}

	if runFlags.reportPath != "" {
		if err := os.WriteFile(runFlags.reportPath, report.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		say.Say(console.Goodbye, runFlags.reportPath)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regscan/internal/analyze"
	"regscan/internal/console"
)

func newConfigsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List the configurations a scan would cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			say := console.New(cmd.OutOrStdout(), globalFlags.verbose, env.settings)
			p, err := analyze.New(env.settings, nil)
			if err != nil {
				return err
			}
			dir, cfgs, err := p.Configurations(env.cwd, "")
			if err != nil {
				say.Fatal(err)
				return &reportedError{err: err}
			}
			say.Progress(console.ScratchResolved, dir)
			for _, c := range cfgs {
				fmt.Fprintln(cmd.OutOrStdout(), c.Name)
			}
			return nil
		},
	}
}

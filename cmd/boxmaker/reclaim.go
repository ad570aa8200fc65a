package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReclaimCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reclaim",
		Short: "Delete generated PDFs older than box.reclaim_age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(cfg)
			defer log.Close()

			svc, _, err := newBoxService(cfg, log)
			if err != nil {
				return err
			}

			result, err := svc.Reclaim(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reclaimed %d boxes\n", result.DeletedCount)
			for _, name := range result.DeletedFiles {
				fmt.Fprintf(out, "  %s\n", name)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s\n", e)
			}
			return nil
		},
	}
}

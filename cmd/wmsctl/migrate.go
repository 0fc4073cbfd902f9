package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand aplica las migraciones embebidas pendientes.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			applied, err := b.migrate(cmd.Context())
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "migrar", Err: err}
			}
			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(out, map[string]any{"applied": applied})
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "esquema al día")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "aplicada %s\n", v)
			}
			return nil
		},
	}
}

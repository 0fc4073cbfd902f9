package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
)

// Códigos de salida.
const (
	ExitFailure      = 1 // alguna operación del lote falló
	ExitCommandError = 2 // configuración, conexión o archivo inválido
)

// ExitError error con código de salida.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// backend lo que necesitan los subcomandos. close libera el pool.
type backend struct {
	coord   *devicesync.Coordinator
	migrate func(ctx context.Context) ([]string, error)
	close   func()
}

type connectFunc func(ctx context.Context) (*backend, error)

// RootOptions flags globales.
type RootOptions struct {
	Format  string // "json" | "text"
	connect connectFunc
}

var validFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz. connect abre el backend bajo demanda.
func NewRootCommand(connect connectFunc) *cobra.Command {
	opts := &RootOptions{connect: connect}

	cmd := &cobra.Command{
		Use:   "wmsctl",
		Short: "Operación del ledger de stock",
		Long:  "Migraciones, reproducción de colas de terminales y descarga delta del WMS.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.Format {
					return nil
				}
			}
			return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("formato %q inválido: use %v", opts.Format, validFormats)}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewDeltaCommand(opts))

	return cmd
}

func (o *RootOptions) open(ctx context.Context) (*backend, error) {
	b, err := o.connect(ctx)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "conectar", Err: err}
	}
	return b, nil
}

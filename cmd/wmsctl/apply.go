package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wms-sync/internal/application/dto"
)

// ApplyOptions flags de apply.
type ApplyOptions struct {
	*RootOptions
	File string
}

// NewApplyCommand reproduce una cola de operaciones exportada de un terminal.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Aplicar una cola de operaciones de terminal",
		Long: `Aplica en orden las operaciones de un archivo exportado de la cola de un terminal,
igual que POST /api/sync/upload. Las operaciones con idempotency_key ya procesadas
se responden sin volver a aplicarse.

El archivo puede ser {"operations":[...]} o directamente el arreglo.

Códigos de salida:
  0 - todas las operaciones se aplicaron
  1 - alguna operación falló (ver resultados)
  2 - error de archivo o de conexión`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(opts.File)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "leer archivo", Err: err}
			}
			ops, err := decodeOperations(raw)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "archivo de operaciones inválido", Err: err}
			}

			b, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			results := b.coord.Upload(cmd.Context(), ops)
			if err := writeResults(cmd, opts.Format, results); err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
				}
			}
			if failed > 0 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d de %d operaciones fallaron", failed, len(results))}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "archivo JSON con las operaciones (requerido)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func decodeOperations(raw []byte) ([]dto.SyncOperation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var ops []dto.SyncOperation
		if err := json.Unmarshal(raw, &ops); err != nil {
			return nil, err
		}
		return ops, nil
	}
	var req dto.SyncUploadRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.Operations == nil {
		return nil, fmt.Errorf("falta operations")
	}
	return req.Operations, nil
}

func writeResults(cmd *cobra.Command, format string, results []dto.SyncOperationResult) error {
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), dto.SyncUploadResponse{Success: true, Results: results})
	}
	out := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Success && r.TransferRef != "":
			fmt.Fprintf(out, "#%d %s ok transfer_ref=%s%s\n", r.LocalID, r.Type, r.TransferRef, replayedTag(r))
		case r.Success:
			fmt.Fprintf(out, "#%d %s ok receipt_id=%d%s\n", r.LocalID, r.Type, r.ReceiptID, replayedTag(r))
		default:
			fmt.Fprintf(out, "#%d %s %s: %s\n", r.LocalID, r.Type, r.ErrorCode, r.Message)
		}
	}
	return nil
}

func replayedTag(r dto.SyncOperationResult) string {
	if r.Replayed {
		return " (ya procesada)"
	}
	return ""
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// DeltaOptions flags de delta.
type DeltaOptions struct {
	*RootOptions
	Since string
}

// NewDeltaCommand imprime la descarga delta que recibiría un terminal.
func NewDeltaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeltaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delta",
		Short: "Descarga delta desde una marca de agua",
		Long: `Imprime lo mismo que POST /api/sync/download. Sin --since devuelve todas las tablas.
En formato text solo se imprimen los conteos por tabla y la próxima marca de agua.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			var since *string
			if opts.Since != "" {
				since = &opts.Since
			}
			resp, err := b.coord.DownloadSince(cmd.Context(), since)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "descarga", Err: err}
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			out := cmd.OutOrStdout()
			d := resp.Data
			fmt.Fprintf(out, "bootstrap: %t\n", resp.Bootstrap)
			fmt.Fprintf(out, "locations: %d\n", len(d.Locations))
			fmt.Fprintf(out, "purchase_orders: %d\n", len(d.PurchaseOrders))
			fmt.Fprintf(out, "purchase_order_lines: %d\n", len(d.PurchaseOrderLines))
			fmt.Fprintf(out, "stock_removals: %d\n", len(d.StockRemovals))
			fmt.Fprintf(out, "inventory_stock: %d\n", len(d.InventoryStock))
			fmt.Fprintf(out, "goods_receipts: %d\n", len(d.GoodsReceipts))
			fmt.Fprintf(out, "goods_receipt_items: %d\n", len(d.GoodsReceiptItems))
			fmt.Fprintf(out, "inventory_transfers: %d\n", len(d.InventoryTransfers))
			fmt.Fprintf(out, "timestamp: %s\n", resp.Timestamp)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Since, "since", "", "marca de agua RFC3339 de la última descarga")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

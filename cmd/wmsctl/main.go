// wmsctl herramientas de operación: migraciones, reproducción de colas de terminales
// y descarga delta desde la línea de comandos.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCommand(connectPostgres)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitCommandError)
	}
}

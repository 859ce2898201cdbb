// main.go
package main

import (
	"os"

	"resource-console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

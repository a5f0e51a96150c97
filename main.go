// Package main is the entry point for the giving CLI.
package main

import (
	"fmt"
	"os"

	"github.com/adminizer/giving/cmd"
	"github.com/adminizer/giving/internal/iocache"
)

// main wires the global donor store into the CLI and runs it.
func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

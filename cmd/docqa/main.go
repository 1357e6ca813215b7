// Command docqa stores documents and answers questions about them.
package main

import (
	"os"

	"github.com/custodia-labs/docqa/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

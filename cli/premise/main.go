package main

import (
	"os"

	premisecmder "github.com/premiselab/premise/cmd/premise"
)

func main() {
	cmd := premisecmder.NewPremiseCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/thaumlab/aspecter/cmd/aspecter"
)

func main() {
	if err := aspecter.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/LavanyaSharma232/eduease/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/sednabcn/job-search-automation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

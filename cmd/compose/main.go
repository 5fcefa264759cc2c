package main

import (
	"fmt"
	"os"

	"call-compositor/internal/cli"
	"call-compositor/internal/platform/config"
)

func main() {
	_ = config.Load()

	deps := &cli.Dependencies{
		Settings: config.FromEnv(),
		Out:      os.Stdout,
		Err:      os.Stderr,
	}

	if err := cli.NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kailas-cloud/patchscout/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

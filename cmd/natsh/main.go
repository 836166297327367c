package main

import (
	"context"
	"os"

	"github.com/pieronoviello/natsh/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"portfolio-backend/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

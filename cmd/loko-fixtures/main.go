package main

import (
	"os"

	"lokofixtures/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

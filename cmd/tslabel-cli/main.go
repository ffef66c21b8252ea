package main

import (
	"os"

	"tslabel/app/cli"
)

func main() {
	os.Exit(cli.Execute())
}

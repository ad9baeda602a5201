package main

import "github.com/mcoot/quarto/internal/cli"

func main() {
	cli.Execute()
}

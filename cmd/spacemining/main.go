package main

import "github.com/andrescamacho/spacemining-go/internal/adapters/cli"

func main() {
	cli.Execute()
}

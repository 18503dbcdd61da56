package main

import "github.com/andrescamacho/basedbot-go/internal/adapters/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/meenmo/creditcurve/internal/cli"

func main() {
	cli.Execute()
}

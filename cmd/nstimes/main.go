package main

import "github.com/evanraalte/nstimes/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/canonical/hardware-observer/pkg/cli"

func main() {
	cli.Execute()
}

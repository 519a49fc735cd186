package main

import "featurestore/internal/cli"

func main() {
	cli.Execute()
}

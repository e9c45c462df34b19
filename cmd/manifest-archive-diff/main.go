package main

import "manifest-archive-diff/internal/cli"

func main() {
	cli.Execute()
}

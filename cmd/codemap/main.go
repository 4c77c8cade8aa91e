package main

import "codemap/internal/cli"

func main() {
	cli.Execute()
}

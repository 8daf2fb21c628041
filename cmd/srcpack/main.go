package main

import (
	"srcpack/internal/cli"
)

func main() {
	cli.Execute()
}

// Package main provides the entry point for the lovemonster CLI.
package main

import (
	"github.com/ometa/lovemonster-cli-go/internal/cli"
)

func main() {
	cli.Execute()
}

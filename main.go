// Package main is the entry point for the propgen CLI.
package main

import "propgen.dev/pkg/propgen/cmd"

func main() {
	cmd.Execute()
}

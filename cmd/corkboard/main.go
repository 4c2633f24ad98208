// Package main provides the corkboard server binary.
package main

import "github.com/mesh-intelligence/corkboard/internal/cli"

func main() {
	cli.Execute()
}

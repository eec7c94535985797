// Command recipebox is the command-line client for a personal recipe
// collection.
package main

import "github.com/mesh-intelligence/recipebox/internal/cli"

func main() {
	cli.Execute()
}

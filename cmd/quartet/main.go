// Command quartet runs the persona-conditioned generation backend.
package main

import "github.com/quartetlab/quartet/internal/cli"

func main() {
	cli.Execute()
}

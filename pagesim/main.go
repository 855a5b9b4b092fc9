// Package main is the entry of the pagesim command-line tool.
package main

import (
	"github.com/sarchlab/pagesim/pagesim/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}

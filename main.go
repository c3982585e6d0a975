// Package main is the entry point for cinedex.
package main

import (
	"github.com/cinedex/cinedex/cmd"
	"github.com/cinedex/cinedex/config"
	"github.com/cinedex/cinedex/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

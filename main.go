// Package main is the entry point for the liveurl application.
package main

import (
	"github.com/liveurl/liveurl/cmd"
	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

package main

import (
	"github.com/cuelink/cuelink/cmd"
	"github.com/cuelink/cuelink/config"
	"github.com/cuelink/cuelink/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}

package main

import (
	"github.com/robotalks/perilink/pkg/cli/sh"
	env "github.com/robotalks/perilink/pkg/l1/env/connector"

	_ "github.com/robotalks/perilink/pkg/cli/cmds/arm"
)

//go-build: CGO_ENABLED=0

func init() {
	env.Default().Ref.Type = "arm"
	env.SetupFlags()
}

func main() {
	sh.Main()
}

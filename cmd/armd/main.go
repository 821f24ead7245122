package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/robotalks/perilink/pkg/arm"
	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	env "github.com/robotalks/perilink/pkg/l1/env/controller"
	"github.com/robotalks/perilink/pkg/serial"
)

var listPorts bool

func init() {
	env.SetControllerType("arm", l1.ControllerMeta{Description: "Servo arm with range sensor"})
	env.SetupFlags()
	arm.SetupFlags()
	flag.BoolVar(&listPorts, "list-ports", listPorts, "List serial ports and exit.")
}

func main() {
	flag.Parse()

	if listPorts {
		ports, err := serial.List()
		if err != nil {
			log.Fatalln(err)
		}
		for _, port := range ports {
			fmt.Println(port)
		}
		return
	}

	env := env.NewConfig().MustNewEnv()
	ctl, err := arm.NewConfig().NewController(context.Background(), env)
	if err != nil {
		log.Fatalln(err)
	}
	defer func() {
		if err := ctl.Close(); err != nil {
			log.Printf("shutdown servo: %v", err)
		}
	}()

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NewLoop().Add(env, ctl))
	if err := runner.Wait(); err != nil {
		log.Println(err)
	}
}

// Package controller sets up the environment of an L1 controller process.
package controller

import (
	"flag"
	"fmt"
	"log"
	"os"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/comm"
	"github.com/robotalks/perilink/pkg/l1/comm/mqtt"
	"github.com/robotalks/perilink/pkg/l1/env"
)

// DefaultMQTTBrokerURL is used when ROBO_MQTT_URL isn't set.
const DefaultMQTTBrokerURL = "mqtt://localhost:1883/perilink/"

// Config provides common options of L1 controllers.
type Config struct {
	Info l1.ControllerInfo

	// MQTTBrokerURL is like mqtt://host:port/topic-prefix/.
	MQTTBrokerURL string
}

var defaultConfig = Config{
	MQTTBrokerURL: DefaultMQTTBrokerURL,
}

func init() {
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Controller type.")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID, default is derived from machine ID.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// SetControllerType should be called in init with basic info about the controller.
func SetControllerType(typ string, meta l1.ControllerMeta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// NewConfig creates a Config from defaults.
func NewConfig() *Config {
	conf := defaultConfig
	if conf.Info.Ref.ID == "" {
		conf.Info.Ref.ID = env.MachineID()
	}
	return &conf
}

// Env is the environment of an L1 controller.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *comm.RegistrarMux
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("controller type and id must be specified")
	}
	e := &Env{
		Config:    c,
		Registrar: &comm.RegistrarMux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar: %w", err)
		}
		e.Registrar.Add(reg)
		e.RegistryURLs = append(e.RegistryURLs, c.MQTTBrokerURL)
	}
	if len(e.Registrar.Registrars) == 0 {
		return nil, fmt.Errorf("at least one registrar is required")
	}
	return e, nil
}

// MustNewEnv creates Env and exits on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// AddToLoop implements LoopAdder.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Registrar, &comm.UnsupportedCommands{})
}

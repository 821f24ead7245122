// Package connector sets up connections to L1 controllers.
package connector

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/comm/mqtt"
)

// DefaultRegistryURL is used when ROBO_REGISTRY_URL isn't set.
const DefaultRegistryURL = "mqtt://localhost:1883/perilink/"

// Config provides common options of connectors.
type Config struct {
	Ref l1.ControllerRef

	// RegistryURL is where controllers are registered, e.g.
	// mqtt://host:port/topic-prefix/.
	RegistryURL string
}

var defaultConfig = Config{
	RegistryURL: DefaultRegistryURL,
}

func init() {
	if val := os.Getenv("ROBO_TYPE"); val != "" {
		defaultConfig.Ref.Type = val
	}
	if val := os.Getenv("ROBO_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("ROBO_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "robot-type", defaultConfig.Ref.Type, "Controller type to connect.")
	flag.StringVar(&defaultConfig.Ref.ID, "robot-id", defaultConfig.Ref.ID, "Controller ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "robot-reg", defaultConfig.RegistryURL, "Controller registry URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config from defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector creates a Connector for RegistryURL.
func (c *Config) NewConnector() (l1.Connector, error) {
	u, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %w", err)
	}
	switch u.Scheme {
	case "mqtt", "mqtts", "tcp", "ssl", "ws", "wss":
		return mqtt.NewConnector(c.RegistryURL)
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", u.Scheme)
	}
}

// MustNewConnector creates a Connector and exits on error.
func (c *Config) MustNewConnector() l1.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect connects to the controller Ref.
func (c *Config) Connect(ctx context.Context) (l1.ControllerConn, error) {
	if !c.Ref.IsValid() {
		return nil, fmt.Errorf("controller type and id must be specified")
	}
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	return connector.Connect(ctx, c.Ref)
}

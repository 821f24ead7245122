package connector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/perilink/pkg/l1/comm/mqtt"
)

func TestNewConnector(t *testing.T) {
	conf := NewConfig()
	conf.RegistryURL = "mqtt://localhost:1883/test/"
	connector, err := conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &mqtt.Connector{}, connector)

	conf.RegistryURL = "http://localhost"
	_, err = conf.NewConnector()
	require.Error(t, err)
}

func TestConnectRequiresRef(t *testing.T) {
	conf := NewConfig()
	conf.Ref.Type, conf.Ref.ID = "arm", ""
	_, err := conf.Connect(context.Background())
	require.Error(t, err)
}

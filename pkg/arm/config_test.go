package arm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/perilink/pkg/l0/sc08a"
	"github.com/robotalks/perilink/pkg/l0/tfluna"
	"github.com/robotalks/perilink/pkg/l1/comm"
	env "github.com/robotalks/perilink/pkg/l1/env/controller"
	"github.com/robotalks/perilink/pkg/serial/serialtest"
)

func testEnv() *env.Env {
	return &env.Env{Registrar: &comm.RegistrarMux{}}
}

func TestConfigValidate(t *testing.T) {
	conf := NewConfig()
	require.NoError(t, conf.Validate())

	conf.TiltChannel = 9
	require.True(t, errors.Is(conf.Validate(), sc08a.ErrInvalidChannel))

	conf = NewConfig()
	conf.TiltChannel = conf.PanChannel
	require.Error(t, conf.Validate())

	conf = NewConfig()
	conf.Speed = 256
	require.Error(t, conf.Validate())

	conf = NewConfig()
	conf.Delta = uint(sc08a.MaxPosition) + 1
	require.Error(t, conf.Validate())
}

func TestConfigNewControllerServoOnly(t *testing.T) {
	opener := &serialtest.Opener{}
	conf := NewConfig()
	conf.RangePort = ""
	conf.Opener = opener
	conf.Speed, conf.Delta = 30, 40
	ctl, err := conf.NewController(context.Background(), testEnv())
	require.NoError(t, err)
	require.Equal(t, []int{sc08a.DefaultBaudRate}, opener.Opens())
	require.Equal(t, [][]byte{sc08a.EncodeInit()}, opener.Last().Writes())
	require.Equal(t, byte(30), ctl.Speed)
	require.Equal(t, uint16(40), ctl.Delta)
	require.Nil(t, ctl.ranger)

	require.NoError(t, ctl.Close())
	require.True(t, opener.Last().IsClosed())
}

func TestConfigNewControllerWithRange(t *testing.T) {
	opener := &serialtest.Opener{NewPort: func(baud int) *serialtest.Port {
		p := serialtest.NewPort(baud)
		if baud == tfluna.DefaultBaudRate {
			p.Source = func() []byte { return rangeFrame }
		}
		return p
	}}
	conf := NewConfig()
	conf.RangePort = "/dev/ttyRANGE"
	conf.Opener = opener
	ctl, err := conf.NewController(context.Background(), testEnv())
	require.NoError(t, err)
	require.NotNil(t, ctl.ranger)
	require.Equal(t, []int{tfluna.DefaultBaudRate, sc08a.DefaultBaudRate}, opener.Opens())
	require.NoError(t, ctl.ranger.Close())
	require.NoError(t, ctl.Close())
}

func TestConfigNewControllerInvalid(t *testing.T) {
	opener := &serialtest.Opener{}
	conf := NewConfig()
	conf.Opener = opener
	conf.PanChannel = 0
	_, err := conf.NewController(context.Background(), testEnv())
	require.Error(t, err)
	require.Empty(t, opener.Opens())
}

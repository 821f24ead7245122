package sh

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/perilink/pkg/arm/msgs"
	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	l1msgs "github.com/robotalks/perilink/pkg/l1/msgs"
)

type notSerializable struct{}

func (m *notSerializable) NewMessage() fx.Message { return &notSerializable{} }

func TestFormatInfo(t *testing.T) {
	info := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "arm", ID: "a1"}}
	require.Equal(t, "arm/a1", FormatInfo(info))
	info.Meta.Description = "pan tilt arm"
	require.Equal(t, "arm/a1: pan tilt arm", FormatInfo(info))
}

func TestFormatResult(t *testing.T) {
	out, err := FormatResult(&l1msgs.CommandOK{}, false)
	require.NoError(t, err)
	require.Equal(t, "OK", out)

	out, err = FormatResult(&l1msgs.CommandOK{}, true)
	require.NoError(t, err)
	require.Equal(t, "{}", out)

	out, err = FormatResult(&msgs.ServoPosition{Channel: 1, Position: 100}, true)
	require.NoError(t, err)
	require.JSONEq(t, `{"channel":1,"position":100}`, out)

	out, err = FormatResult(&msgs.ServoPosition{Channel: 1, Position: 100}, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ServoPosition "))
	require.Contains(t, out, "position:100")

	_, err = FormatResult(&notSerializable{}, false)
	require.True(t, errors.Is(err, l1msgs.ErrNotSerializable))
}

func TestFormatResultEvent(t *testing.T) {
	out, err := FormatResult(&msgs.RangeReading{Distance: 1.5, Strength: 10}, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "RangeReading "))
	require.Contains(t, out, "distance:1.5")
}

func TestTypeFilter(t *testing.T) {
	require.Nil(t, typeFilter(""))
	filter := typeFilter("arm")
	require.True(t, filter(l1.ControllerInfo{Ref: l1.ControllerRef{Type: "arm", ID: "a"}}))
	require.False(t, filter(l1.ControllerInfo{Ref: l1.ControllerRef{Type: "cam", ID: "a"}}))
}

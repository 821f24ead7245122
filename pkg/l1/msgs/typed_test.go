package msgs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedRoundTrip(t *testing.T) {
	typed, err := TypedFrom(NewCommandErr(errors.New("servo stalled")))
	require.NoError(t, err)
	typed.Sequence = 12
	data, err := typed.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, CommandErrTypeID, decoded.TypeID)
	require.Equal(t, uint32(12), decoded.Sequence)
	require.True(t, decoded.IsCommand())
	require.True(t, decoded.IsReply())
	require.False(t, decoded.IsEvent())

	msg, err := decoded.Decode()
	require.NoError(t, err)
	require.Equal(t, "servo stalled", msg.(*CommandErr).Error())
}

func TestTypedUnknown(t *testing.T) {
	typed := &Typed{TypeID: GroupCustom | 0x7777}
	_, err := typed.Decode()
	var unknown *UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, typed.TypeID, unknown.TypeID)
}

func TestRegisterConflict(t *testing.T) {
	require.Panics(t, func() { Register(&CommandOK{}) })
}

func TestReply(t *testing.T) {
	require.IsType(t, &CommandOK{}, Reply(nil))
	require.Equal(t, "failed", Reply(errors.New("failed")).(*CommandErr).Message)
}

package serial

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, r.err
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

type shortWriter int

func (w shortWriter) Write(p []byte) (int, error) {
	if int(w) < len(p) {
		return int(w), nil
	}
	return len(p), nil
}

func TestReadFull(t *testing.T) {
	testCases := []struct {
		name   string
		reader *chunkReader
		size   int
		expect []byte
		err    error
	}{
		{"single chunk", &chunkReader{chunks: [][]byte{{1, 2}}}, 2, []byte{1, 2}, nil},
		{"split chunks", &chunkReader{chunks: [][]byte{{1}, {2}}}, 2, []byte{1, 2}, nil},
		{"timeout no data", &chunkReader{}, 2, []byte{}, ErrTimeout},
		{"timeout partial", &chunkReader{chunks: [][]byte{{1}}}, 2, []byte{1}, ErrTimeout},
		{"eof partial", &chunkReader{chunks: [][]byte{{1}}, err: io.EOF}, 2, []byte{1}, io.ErrUnexpectedEOF},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, tc.size)
			n, err := ReadFull(tc.reader, buf)
			require.Equal(t, tc.expect, buf[:n])
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, tc.err), "unexpected error %v", err)
			}
		})
	}
}

func TestReadFullTimeoutError(t *testing.T) {
	buf := make([]byte, 2)
	_, err := ReadFull(&chunkReader{chunks: [][]byte{{7}}}, buf)
	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "read", te.Op)
	require.Equal(t, 2, te.Want)
	require.Equal(t, 1, te.Got)
	require.True(t, IsTimeout(err))
}

func TestWriteFull(t *testing.T) {
	n, err := WriteFull(shortWriter(4), []byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = WriteFull(shortWriter(1), []byte{1, 2})
	require.Equal(t, 1, n)
	require.True(t, IsTimeout(err))
}

func TestModeWithBaudRate(t *testing.T) {
	mode := Mode{BaudRate: 9600, ReadTimeout: DefaultReadTimeout}
	other := mode.WithBaudRate(38400)
	require.Equal(t, 38400, other.BaudRate)
	require.Equal(t, DefaultReadTimeout, other.ReadTimeout)
	require.Equal(t, 9600, mode.BaudRate)
}

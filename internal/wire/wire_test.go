package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agbru/infinite/internal/bigint"
)

func TestMarshalUnmarshal(t *testing.T) {
	type TC struct {
		name string
		x    bigint.Int
		data []byte
	}

	tcs := []TC{
		{name: "NaN", x: bigint.NaN(), data: []byte{TagNaN}},
		{name: "+Inf", x: bigint.PosInf(), data: []byte{TagPosInf}},
		{name: "-Inf", x: bigint.NegInf(), data: []byte{TagNegInf}},
		{
			name: "0",
			x:    bigint.Zero(),
			data: []byte{TagNonNegative, 1, 0, 0, 0, 0, 0},
		},
		{
			name: "-5",
			x:    bigint.FromInt64(-5),
			data: []byte{TagNegative, 1, 0, 0, 0, 5, 0},
		},
		{
			name: "8589934597",
			x:    bigint.FromInt64(8589934597),
			data: []byte{TagNonNegative, 2, 0, 0, 0, 5, 0, 0, 0, 2, 0},
		},
		{
			name: "0x0102030405060708",
			x:    bigint.FromUint64(0x0102030405060708),
			data: []byte{TagNonNegative, 2, 5, 6, 7, 8, 1, 2, 3, 4, 0},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			t.Run("marshal", func(t *testing.T) {
				require.Equal(t, tc.data, Marshal(tc.x))
			})

			t.Run("unmarshal", func(t *testing.T) {
				x, err := Unmarshal(tc.data)
				require.NoError(t, err)
				require.True(t, x.Equal(tc.x), "got %s", x)
			})
		})
	}
}

func TestChunking(t *testing.T) {
	words := make([]uint32, 600)
	for i := range words {
		words[i] = uint32(i + 1)
	}
	x := bigint.FromWords(true, words)
	data := Marshal(x)

	// tag, three chunk headers (255, 255, 90), the words, the terminator
	require.Len(t, data, 1+3+600*4+1)
	require.Equal(t, byte(255), data[1])
	require.Equal(t, byte(255), data[1+1+255*4])
	require.Equal(t, byte(90), data[1+2*(1+255*4)])
	require.Equal(t, byte(0), data[len(data)-1])

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.True(t, back.Equal(x))
}

func TestStream(t *testing.T) {
	values := []bigint.Int{
		bigint.FromInt64(42),
		bigint.NaN(),
		bigint.One().MulPow2(100).Neg(),
		bigint.PosInf(),
		bigint.Zero(),
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, v := range values {
		require.NoError(t, enc.Encode(v))
	}

	dec := NewDecoder(io.MultiReader(&buf))
	for _, want := range values {
		got, err := dec.Decode()
		require.NoError(t, err)
		require.True(t, got.Equal(want), "got %s want %s", got, want)
	}
	_, err := dec.Decode()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeErrors(t *testing.T) {
	tcs := []struct {
		name      string
		data      []byte
		truncated bool
	}{
		{name: "unknown tag", data: []byte{9}},
		{name: "no magnitude", data: []byte{TagNonNegative}, truncated: true},
		{name: "short word", data: []byte{TagNonNegative, 1, 0, 0}, truncated: true},
		{name: "missing terminator", data: []byte{TagNegative, 1, 0, 0, 0, 1}, truncated: true},
		{name: "empty magnitude", data: []byte{TagNonNegative, 0}},
		{name: "leading zero word", data: []byte{TagNonNegative, 2, 0, 0, 0, 1, 0, 0, 0, 0, 0}},
		{name: "negative zero", data: []byte{TagNegative, 1, 0, 0, 0, 0, 0}},
		{name: "trailing bytes", data: []byte{TagNaN, TagNaN}},
		{name: "empty input", data: nil, truncated: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal(tc.data)
			require.Error(t, err)
			require.True(t, Error.Has(err), "error %v is not in the wire class", err)
			if tc.truncated {
				require.True(t, errors.Is(err, io.ErrUnexpectedEOF), "error %v is not a truncation", err)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteError(t *testing.T) {
	err := NewEncoder(failingWriter{}).Encode(bigint.One())
	require.Error(t, err)
	require.True(t, Error.Has(err))
}

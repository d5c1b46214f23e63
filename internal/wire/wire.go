// Package wire implements the persisted byte form of bigint values.
//
// A value starts with a tag byte. Finite values follow it with their
// magnitude as a series of chunks: a count byte (1 to 255) and that many
// 32-bit words, each written as 4 big-endian bytes, least significant word
// first. A zero count byte ends the magnitude.
package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/errs"

	"github.com/agbru/infinite/internal/bigint"
)

// Error is the class of all errors returned by this package.
var Error = errs.Class("wire")

// Tag bytes.
const (
	TagNaN         byte = 0
	TagPosInf      byte = 1
	TagNegInf      byte = 2
	TagNegative    byte = 3
	TagNonNegative byte = 4
)

const (
	maxChunkWords = 255
	wordBytes     = 4
)

// AppendInt appends the encoding of x to dst.
func AppendInt(dst []byte, x bigint.Int) []byte {
	switch x.Kind() {
	case bigint.KindNaN:
		return append(dst, TagNaN)
	case bigint.KindPosInf:
		return append(dst, TagPosInf)
	case bigint.KindNegInf:
		return append(dst, TagNegInf)
	}
	tag := TagNonNegative
	if x.Sign() < 0 {
		tag = TagNegative
	}
	dst = append(dst, tag)
	words := x.Words()
	for len(words) > 0 {
		n := min(len(words), maxChunkWords)
		dst = append(dst, byte(n))
		for _, w := range words[:n] {
			dst = binary.BigEndian.AppendUint32(dst, w)
		}
		words = words[n:]
	}
	return append(dst, 0)
}

// Marshal returns the encoding of x.
func Marshal(x bigint.Int) []byte {
	return AppendInt(nil, x)
}

// Unmarshal decodes a single value that must span all of data.
func Unmarshal(data []byte) (x bigint.Int, err error) {
	r := bytes.NewReader(data)
	x, err = NewDecoder(r).Decode()
	if errors.Is(err, io.EOF) {
		return bigint.NaN(), Error.Wrap(io.ErrUnexpectedEOF)
	}
	if err != nil {
		return bigint.NaN(), err
	}
	if rest := r.Len(); rest > 0 {
		return bigint.NaN(), Error.New("%d trailing bytes", rest)
	}
	return x, nil
}

// Encoder writes encoded values to a stream.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one value.
func (e *Encoder) Encode(x bigint.Int) (err error) {
	defer Error.WrapP(&err)

	e.buf = AppendInt(e.buf[:0], x)
	_, err = e.w.Write(e.buf)
	return err
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Decoder reads encoded values from a stream. Unless r is also an
// io.ByteReader, the Decoder buffers and may read ahead of the last value.
type Decoder struct {
	r byteReader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	if br, ok := r.(byteReader); ok {
		return &Decoder{r: br}
	}
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads the next value. At a clean end of stream it returns io.EOF.
func (d *Decoder) Decode() (x bigint.Int, err error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return bigint.NaN(), io.EOF
		}
		return bigint.NaN(), Error.Wrap(err)
	}
	defer Error.WrapP(&err)

	switch tag {
	case TagNaN:
		return bigint.NaN(), nil
	case TagPosInf:
		return bigint.PosInf(), nil
	case TagNegInf:
		return bigint.NegInf(), nil
	case TagNegative, TagNonNegative:
	default:
		return bigint.NaN(), fmt.Errorf("unknown tag %d", tag)
	}

	words, err := d.readMagnitude()
	if err != nil {
		return bigint.NaN(), err
	}
	x = bigint.FromWords(tag == TagNegative, words)
	if tag == TagNegative && x.IsZero() {
		return bigint.NaN(), errors.New("negative zero")
	}
	return x, nil
}

func (d *Decoder) readMagnitude() ([]uint32, error) {
	var words []uint32
	var word [wordBytes]byte
	for {
		n, err := d.r.ReadByte()
		if err != nil {
			return nil, truncated(err)
		}
		if n == 0 {
			break
		}
		for i := 0; i < int(n); i++ {
			if _, err := io.ReadFull(d.r, word[:]); err != nil {
				return nil, truncated(err)
			}
			words = append(words, binary.BigEndian.Uint32(word[:]))
		}
	}
	switch {
	case len(words) == 0:
		return nil, errors.New("empty magnitude")
	case len(words) > 1 && words[len(words)-1] == 0:
		return nil, errors.New("magnitude has a leading zero word")
	}
	return words, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

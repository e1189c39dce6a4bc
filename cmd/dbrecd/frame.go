package main

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const maxFrameSize = 64 << 20

// readFrame reads one 4-byte big-endian length-prefixed msgpack frame into v.
func readFrame(r io.Reader, v any) error {
	var lengthBytes [4]byte
	if _, err := io.ReadFull(r, lengthBytes[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lengthBytes[:])
	if n == 0 || n > maxFrameSize {
		return errors.Errorf("dbrecd: invalid frame length %d", n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return errors.Wrap(err, "dbrecd: read frame body")
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "dbrecd: decode frame")
	}
	return nil
}

func writeFrame(w io.Writer, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "dbrecd: encode frame")
	}
	buf := make([]byte, 4, 4+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	buf = append(buf, data...)
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "dbrecd: write frame")
	}
	return nil
}

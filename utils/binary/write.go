// Package binary implements the big-endian serialization helpers the
// on-disk formats of the store are written with.
package binary

import (
	"encoding/binary"
	"io"
)

// Write serializes each value in data into w as big-endian, stopping at
// the first failing write.
func Write(w io.Writer, data ...interface{}) error {
	for _, v := range data {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}

	return nil
}

// WriteUint64 writes a big-endian uint64 into w.
func WriteUint64(w io.Writer, value uint64) error {
	return binary.Write(w, binary.BigEndian, value)
}

// WriteUint32 writes a big-endian uint32 into w.
func WriteUint32(w io.Writer, value uint32) error {
	return binary.Write(w, binary.BigEndian, value)
}

package db

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const counterSize = 8

// Uint64ToBytes encodes i big-endian so stored counters compare in numeric order.
func Uint64ToBytes(i uint64) []byte {
	var buf = make([]byte, counterSize)
	binary.BigEndian.PutUint64(buf, i)
	return buf
}

// BytesToUint64 decodes a counter written by Uint64ToBytes.
func BytesToUint64(buf []byte) (uint64, error) {
	if len(buf) != counterSize {
		return 0, errors.Errorf("counter is %d bytes, want %d", len(buf), counterSize)
	}
	return binary.BigEndian.Uint64(buf), nil
}

package utils

import (
	"io"

	"github.com/snksoft/crc"
)

// Passes writes through to w and keeps a CRC-64 (ECMA) of everything
// written. Two runs with the same seed and parameters produce outputs with
// the same checksum.
type CRCWriter struct {
	w    io.Writer
	hash *crc.Hash
	size int64
}

func NewCRCWriter(w io.Writer) *CRCWriter {
	return &CRCWriter{w, crc.NewHash(crc.CRC64ECMA), 0}
}

func (c *CRCWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.hash.Update(p[:n])
	c.size += int64(n)

	return n, err
}

func (c *CRCWriter) CRC() uint64 {
	return c.hash.CRC()
}

// Number of bytes written
func (c *CRCWriter) Size() int64 {
	return c.size
}

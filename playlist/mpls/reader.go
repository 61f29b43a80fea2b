package mpls

import (
	"fmt"
	"io"
)

// stickyReader wraps an io.ReadSeeker so a walk can chain reads and seeks
// and check the first failure once at the end. Reads are all-or-nothing: a
// short read is an error.
type stickyReader struct {
	rs  io.ReadSeeker
	err error
}

func newStickyReader(rs io.ReadSeeker) *stickyReader {
	return &stickyReader{rs: rs}
}

func (sr *stickyReader) Read(p []byte) (int, error) {
	if sr.err != nil {
		return 0, sr.err
	}

	n, err := io.ReadFull(sr.rs, p)
	if err != nil {
		sr.err = fmt.Errorf("short read: %w", err)
	}

	return n, sr.err
}

func (sr *stickyReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := sr.Read(b[:])
	return b[0], err
}

func (sr *stickyReader) Seek(offset int64, whence int) (int64, error) {
	if sr.err != nil {
		return 0, sr.err
	}

	var n int64
	n, sr.err = sr.rs.Seek(offset, whence)

	return n, sr.err
}

// Err returns the first error hit by any read or seek
func (sr *stickyReader) Err() error {
	return sr.err
}

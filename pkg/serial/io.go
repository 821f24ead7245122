package serial

import "io"

// ReadFull reads exactly len(buf) bytes from r.
// A Read returning no data and no error means the read timeout expired,
// which is reported as a *TimeoutError along with the bytes already read.
func ReadFull(r io.Reader, buf []byte) (n int, err error) {
	for n < len(buf) {
		var nr int
		nr, err = r.Read(buf[n:])
		n += nr
		if err != nil {
			if err == io.EOF && n > 0 {
				err = io.ErrUnexpectedEOF
			}
			return
		}
		if nr == 0 {
			return n, &TimeoutError{Op: "read", Want: len(buf), Got: n}
		}
	}
	return n, nil
}

// WriteFull writes all of p to w. A short write without error is
// reported as a write timeout.
func WriteFull(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = &TimeoutError{Op: "write", Want: len(p), Got: n}
	}
	return n, err
}

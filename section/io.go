package section

import (
	"errors"
	"io"

	"github.com/mrmattuschka/yokai-image/errs"
)

// readFull reads exactly len(b) bytes, reporting a short read as truncation of field.
func readFull(r io.Reader, b []byte, field string) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errs.Truncated(field)
		}

		return err
	}

	return nil
}

// readN reads exactly n bytes without trusting n for the initial allocation.
func readN(r io.Reader, n int64, field string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != n {
		return nil, errs.Truncated(field)
	}

	return data, nil
}

func seekTo(r io.Seeker, pos int64) error {
	_, err := r.Seek(pos, io.SeekStart)
	return err
}

func tell(r io.Seeker) (int64, error) {
	return r.Seek(0, io.SeekCurrent)
}

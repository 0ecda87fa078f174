package bin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ReadUint64 reads a uint64 number from the reader
func ReadUint64(r io.Reader) (uint64, int64, error) {
	BNum := make([]byte, 8)
	if n, err := FillBytes(r, BNum); err != nil {
		return 0, n, err
	}
	return binary.LittleEndian.Uint64(BNum), 8, nil
}

// ReadUint32 reads a uint32 number from the reader
func ReadUint32(r io.Reader) (uint32, int64, error) {
	BNum := make([]byte, 4)
	if n, err := FillBytes(r, BNum); err != nil {
		return 0, n, err
	}
	return binary.LittleEndian.Uint32(BNum), 4, nil
}

// ReadUint16 reads a uint16 number from the reader
func ReadUint16(r io.Reader) (uint16, int64, error) {
	BNum := make([]byte, 2)
	if n, err := FillBytes(r, BNum); err != nil {
		return 0, n, err
	}
	return binary.LittleEndian.Uint16(BNum), 2, nil
}

// ReadUint8 reads a uint8 number from the reader
func ReadUint8(r io.Reader) (uint8, int64, error) {
	BNum := make([]byte, 1)
	if n, err := FillBytes(r, BNum); err != nil {
		return 0, n, err
	}
	return BNum[0], 1, nil
}

// ReadBytes reads a var-length prefixed byte array from the reader
func ReadBytes(r io.Reader) ([]byte, int64, error) {
	var read int64
	var Len uint64
	if l, n, err := ReadUint8(r); err != nil {
		return nil, read, err
	} else {
		read += n
		switch l {
		case 254:
			if l16, n, err := ReadUint16(r); err != nil {
				return nil, read, err
			} else {
				read += n
				Len = uint64(l16)
			}
		case 255:
			if l32, n, err := ReadUint32(r); err != nil {
				return nil, read, err
			} else {
				read += n
				Len = uint64(l32)
			}
		default:
			Len = uint64(l)
		}
	}
	bs := make([]byte, Len)
	if n, err := FillBytes(r, bs); err != nil {
		return nil, read, err
	} else {
		read += n
	}
	return bs, read, nil
}

// ReadString reads a string from the reader
func ReadString(r io.Reader) (string, int64, error) {
	if bs, n, err := ReadBytes(r); err != nil {
		return "", n, err
	} else {
		return string(bs), n, nil
	}
}

// ReadBool reads a bool using a uint8 from the reader
func ReadBool(r io.Reader) (bool, int64, error) {
	if v, n, err := ReadUint8(r); err != nil {
		return false, n, err
	} else {
		return (v == 1), n, nil
	}
}

// FillBytes reads bytes from the reader until the given bytes array is filled
func FillBytes(r io.Reader, bs []byte) (int64, error) {
	if n, err := io.ReadFull(r, bs); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = ErrInvalidLength
		}
		return int64(n), errors.WithStack(err)
	} else {
		return int64(n), nil
	}
}

// ReadFromBytes fills the reader from with the bytes
func ReadFromBytes(r io.ReaderFrom, bs []byte) (int64, error) {
	if n, err := r.ReadFrom(bytes.NewReader(bs)); err != nil {
		return n, err
	} else {
		return n, nil
	}
}

// WriterToBytes returns the bytes written by the writer to
func WriterToBytes(w io.WriterTo) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

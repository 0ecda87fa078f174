package bin

import (
	"io"

	"github.com/meverselabs/farms/common"
)

// SumReader reads values in order and keeps the total read size
type SumReader struct {
	sum int64
}

func NewSumReader() *SumReader {
	return &SumReader{
		sum: 0,
	}
}

func (sr *SumReader) Uint8(r io.Reader, p *uint8) (int64, error) {
	if v, n, err := ReadUint8(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		*p = v
		return sr.sum, nil
	}
}

func (sr *SumReader) Uint64(r io.Reader, p *uint64) (int64, error) {
	if v, n, err := ReadUint64(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		*p = v
		return sr.sum, nil
	}
}

func (sr *SumReader) Bytes(r io.Reader, p *[]byte) (int64, error) {
	if v, n, err := ReadBytes(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		*p = v
		return sr.sum, nil
	}
}

func (sr *SumReader) String(r io.Reader, p *string) (int64, error) {
	if v, n, err := ReadString(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		*p = v
		return sr.sum, nil
	}
}

func (sr *SumReader) Bool(r io.Reader, p *bool) (int64, error) {
	if v, n, err := ReadBool(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		*p = v
		return sr.sum, nil
	}
}

func (sr *SumReader) Address(r io.Reader, p *common.Address) (int64, error) {
	if n, err := FillBytes(r, p[:]); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		return sr.sum, nil
	}
}

func (sr *SumReader) ReaderFrom(r io.Reader, p io.ReaderFrom) (int64, error) {
	if n, err := p.ReadFrom(r); err != nil {
		return sr.sum + n, err
	} else {
		sr.sum += n
		return sr.sum, nil
	}
}

func (sr *SumReader) Sum() int64 {
	return sr.sum
}

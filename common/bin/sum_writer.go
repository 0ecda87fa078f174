package bin

import (
	"io"

	"github.com/meverselabs/farms/common"
)

// SumWriter writes values in order and keeps the total written size
type SumWriter struct {
	sum int64
}

func NewSumWriter() *SumWriter {
	return &SumWriter{
		sum: 0,
	}
}

func (sw *SumWriter) Uint8(w io.Writer, v uint8) (int64, error) {
	return sw.add(WriteUint8(w, v))
}

func (sw *SumWriter) Uint64(w io.Writer, v uint64) (int64, error) {
	return sw.add(WriteUint64(w, v))
}

func (sw *SumWriter) Bytes(w io.Writer, v []byte) (int64, error) {
	return sw.add(WriteBytes(w, v))
}

func (sw *SumWriter) String(w io.Writer, v string) (int64, error) {
	return sw.add(WriteString(w, v))
}

func (sw *SumWriter) Bool(w io.Writer, v bool) (int64, error) {
	return sw.add(WriteBool(w, v))
}

// Address writes the fixed size address without a length prefix
func (sw *SumWriter) Address(w io.Writer, v common.Address) (int64, error) {
	return sw.add(writeFull(w, v[:]))
}

func (sw *SumWriter) WriterTo(w io.Writer, v io.WriterTo) (int64, error) {
	return sw.add(v.WriteTo(w))
}

func (sw *SumWriter) Sum() int64 {
	return sw.sum
}

func (sw *SumWriter) add(n int64, err error) (int64, error) {
	sw.sum += n
	return sw.sum, err
}

package backend

import "github.com/pkg/errors"

type readOnlyWriter struct {
	StoreReader
}

// ReadOnly returns a StoreWriter over the reader which refuses every write
func ReadOnly(r StoreReader) StoreWriter {
	return &readOnlyWriter{StoreReader: r}
}

func (w *readOnlyWriter) Set(key []byte, value []byte) error {
	return errors.WithStack(ErrReadOnly)
}

func (w *readOnlyWriter) Delete(key []byte) error {
	return errors.WithStack(ErrReadOnly)
}

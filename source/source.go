package source

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Open sniffs the compression format of r and returns a decompressing
// reader positioned at the first byte of the underlying content, along
// with the detected format. Inputs shorter than the detection window are
// treated as plain text. Closing the result does not close r.
func Open(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(detectLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, FormatPlain, err
	}

	format := Detect(head)
	rc, err := NewReader(br, format)
	if err != nil {
		return nil, format, err
	}
	return rc, format, nil
}

// OpenFile opens path and wires it through Open. Closing the returned
// reader closes both the decompressor and the file.
func OpenFile(path string) (io.ReadCloser, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, FormatPlain, err
	}

	rc, format, err := Open(file)
	if err != nil {
		_ = file.Close()
		return nil, format, err
	}
	return &fileSource{rc: rc, file: file}, format, nil
}

// fileSource bundles a decompressing reader with the file feeding it so
// one Close releases both.
type fileSource struct {
	rc   io.ReadCloser
	file *os.File
}

func (fs *fileSource) Read(p []byte) (int, error) {
	return fs.rc.Read(p)
}

func (fs *fileSource) Close() error {
	return errors.Join(fs.rc.Close(), fs.file.Close())
}

package tracing

import (
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// compressedFile closes the compressor before the file below it.
type compressedFile struct {
	io.WriteCloser
	file *os.File
}

func (f compressedFile) Close() error {
	err := f.WriteCloser.Close()
	if err != nil {
		f.file.Close()
		return err
	}

	return f.file.Close()
}

// createTraceFile creates the file at path. Paths ending in .lz4 are written
// as an LZ4 frame and paths ending in .sz as a snappy stream.
func createTraceFile(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".lz4"):
		return compressedFile{WriteCloser: lz4.NewWriter(file), file: file}, nil
	case strings.HasSuffix(path, ".sz"):
		return compressedFile{
			WriteCloser: snappy.NewBufferedWriter(file),
			file:        file,
		}, nil
	default:
		return file, nil
	}
}

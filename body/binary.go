package body

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// File is a [params.Binary] backed by a file on disk. The file is opened on
// every WriteTo, so one File can be sent by several requests.
type File struct {
	path        string
	name        string
	contentType string
	size        int64
}

// NewFile stats path and detects its content type from the file header.
// name overrides the multipart filename; empty uses the base name of path.
func NewFile(path, name string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat binary file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("binary file %q is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detecting content type: %w", err)
	}

	if name == "" {
		name = filepath.Base(path)
	}

	return &File{
		path:        path,
		name:        name,
		contentType: mtype.String(),
		size:        info.Size(),
	}, nil
}

func (f *File) Name() string        { return f.name }
func (f *File) ContentType() string { return f.contentType }
func (f *File) Length() int64       { return f.size }

func (f *File) WriteTo(w io.Writer) (int64, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return 0, fmt.Errorf("opening binary file: %w", err)
	}
	defer file.Close()

	return io.Copy(w, file)
}

// Blob is an in-memory [params.Binary].
type Blob struct {
	name        string
	contentType string
	data        []byte
}

// NewBlob wraps data. An empty contentType is detected from the data.
func NewBlob(name, contentType string, data []byte) (*Blob, error) {
	if name == "" {
		return nil, errors.New("blob name must not be empty")
	}

	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return &Blob{
		name:        name,
		contentType: contentType,
		data:        bytes.Clone(data),
	}, nil
}

func (b *Blob) Name() string        { return b.name }
func (b *Blob) ContentType() string { return b.contentType }
func (b *Blob) Length() int64       { return int64(len(b.data)) }

func (b *Blob) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}

package targz

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"io/fs"
	"time"

	"github.com/pkg/errors"
)

type Visitor interface {
	VisitDirectory(info fs.FileInfo) error
	VisitFile(info fs.FileInfo) (io.WriteCloser, error)
}

type File struct {
	Name    string
	Body    []byte
	ModTime time.Time
}

// Pack writes files into a gzipped tarball in the given order.
func Pack(output io.Writer, files ...File) error {
	gzipWriter := gzip.NewWriter(output)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, file := range files {
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     file.Name,
			Mode:     0644,
			Size:     int64(len(file.Body)),
			ModTime:  file.ModTime,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return errors.Wrapf(err, "Failed to write header of %s", file.Name)
		}
		if _, err := tarWriter.Write(file.Body); err != nil {
			return errors.Wrapf(err, "Failed to write %s", file.Name)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return errors.Wrap(err, "Failed to finish tarball")
	}
	return gzipWriter.Close()
}

func Extract(input io.Reader, visitor Visitor) error {
	gzipReader, err := gzip.NewReader(input)
	if err != nil {
		return errors.Wrap(err, "Failed to open gzip stream")
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "Failed to read tarball")
		}

		info := header.FileInfo()
		if info.IsDir() {
			if err = visitor.VisitDirectory(info); err != nil {
				return err
			}
			continue
		}

		writer, err := visitor.VisitFile(info)
		if err != nil {
			return err
		}
		if _, err = io.Copy(writer, tarReader); err != nil {
			writer.Close()
			return errors.Wrapf(err, "Failed to extract %s", header.Name)
		}
		if err = writer.Close(); err != nil {
			return err
		}
	}

	return nil
}

type memoryFile struct {
	bytes.Buffer
	name  string
	files map[string][]byte
}

func (f *memoryFile) Close() error {
	f.files[f.name] = f.Bytes()
	return nil
}

type memoryVisitor struct {
	files map[string][]byte
}

func (v *memoryVisitor) VisitDirectory(info fs.FileInfo) error {
	return nil
}

func (v *memoryVisitor) VisitFile(info fs.FileInfo) (io.WriteCloser, error) {
	return &memoryFile{name: info.Name(), files: v.files}, nil
}

// ExtractToMemory returns the regular files of the tarball keyed by base name.
func ExtractToMemory(input io.Reader) (map[string][]byte, error) {
	visitor := &memoryVisitor{files: make(map[string][]byte)}
	if err := Extract(input, visitor); err != nil {
		return nil, err
	}
	return visitor.files, nil
}

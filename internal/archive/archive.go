// Package archive opens the containers pipocas.tv serves subtitle files in.
// The site does not send reliable Content-Type headers, so the container is
// detected from the first bytes of the payload: RAR, ZIP, or a bare subtitle.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
)

// Format identifies the container a download came in.
type Format int

const (
	FormatNone Format = iota // plain subtitle payload, no container
	FormatZip
	FormatRar
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatRar:
		return "rar"
	default:
		return "none"
	}
}

// Archive gives uniform access to a container's entries.
type Archive interface {
	// Names returns the entry names in archive order, directories excluded.
	Names() []string

	// Read returns the content of the named entry.
	Read(name string) ([]byte, error)
}

var (
	rarMagic = []byte("Rar!")
	zipMagic = []byte("PK")
)

// Detect sniffs the container format from the payload's magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, rarMagic):
		return FormatRar
	case bytes.HasPrefix(data, zipMagic):
		return FormatZip
	default:
		return FormatNone
	}
}

// Open detects the container format and opens it. For FormatNone the returned
// Archive is nil and the caller should treat data as the subtitle itself.
func Open(data []byte) (Archive, Format, error) {
	switch format := Detect(data); format {
	case FormatRar:
		a, err := openRar(data)
		return a, format, err
	case FormatZip:
		a, err := openZip(data)
		return a, format, err
	default:
		return nil, FormatNone, nil
	}
}

// zipArchive wraps archive/zip with by-name entry access.
type zipArchive struct {
	names []string
	files map[string]*zip.File
}

func openZip(data []byte) (Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP archive: %w", err)
	}

	a := &zipArchive{files: make(map[string]*zip.File)}
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		a.names = append(a.names, f.Name)
		a.files[f.Name] = f
	}
	return a, nil
}

func (a *zipArchive) Names() []string {
	return a.names
}

func (a *zipArchive) Read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("entry %q not in ZIP archive", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %q: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %q: %w", name, err)
	}
	return content, nil
}

// rarArchive keeps the raw bytes and re-scans the stream on Read;
// rardecode is a sequential reader and the archives are small.
type rarArchive struct {
	data  []byte
	names []string
}

func openRar(data []byte) (Archive, error) {
	a := &rarArchive{data: data}

	reader, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan RAR archive: %w", err)
		}
		if header.IsDir {
			continue
		}
		a.names = append(a.names, header.Name)
	}

	return a, nil
}

func (a *rarArchive) Names() []string {
	return a.names
}

func (a *rarArchive) Read(name string) ([]byte, error) {
	reader, err := rardecode.NewReader(bytes.NewReader(a.data))
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan RAR archive: %w", err)
		}
		if header.IsDir || header.Name != name {
			continue
		}

		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %q: %w", name, err)
		}
		return content, nil
	}

	return nil, fmt.Errorf("entry %q not in RAR archive", name)
}

package message

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// UploadedFile is a file received in a multipart/form-data request.
type UploadedFile struct {
	header *multipart.FileHeader
}

// NewUploadedFile wraps a multipart file header.
func NewUploadedFile(fh *multipart.FileHeader) *UploadedFile {
	return &UploadedFile{header: fh}
}

// ClientFilename returns the filename sent by the client. Do not trust it.
func (f *UploadedFile) ClientFilename() string {
	if f.header == nil {
		return ""
	}
	return f.header.Filename
}

// ClientMediaType returns the Content-Type sent by the client for the part.
func (f *UploadedFile) ClientMediaType() string {
	if f.header == nil {
		return ""
	}
	return f.header.Header.Get("Content-Type")
}

// Size returns the file size in bytes.
func (f *UploadedFile) Size() int64 {
	if f.header == nil {
		return 0
	}
	return f.header.Size
}

// SafeFilename returns the client filename without directory components or
// NUL bytes. Empty and special names become "unnamed".
func (f *UploadedFile) SafeFilename() string {
	name := strings.ReplaceAll(f.ClientFilename(), "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}

// Extension returns the client filename extension including the dot.
func (f *UploadedFile) Extension() string {
	return filepath.Ext(f.ClientFilename())
}

// FileHeader exposes the underlying multipart header.
func (f *UploadedFile) FileHeader() *multipart.FileHeader { return f.header }

// Open opens the file content. The caller closes it.
func (f *UploadedFile) Open() (multipart.File, error) {
	if f.header == nil {
		return nil, ErrNilFileHeader
	}
	file, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return file, nil
}

// DetectMediaType sniffs the media type from the first 512 bytes of content
// rather than trusting the client.
func (f *UploadedFile) DetectMediaType() (string, error) {
	file, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	// 512 bytes is the maximum http.DetectContentType reads
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buffer[:n]), nil
}

// ReadAll reads the whole file into memory.
func (f *UploadedFile) ReadAll() ([]byte, error) {
	file, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return data, nil
}

// Hash returns the hex digest of the content. A nil h defaults to SHA-256.
func (f *UploadedFile) Hash(h hash.Hash) (string, error) {
	if h == nil {
		h = sha256.New()
	}
	file, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

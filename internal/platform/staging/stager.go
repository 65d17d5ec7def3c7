// Package staging writes an inbound multipart image to a local temporary file
// so use cases can hand a path to the image store.
package staging

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const FieldName = "image"

var (
	ErrFileTooLarge  = errors.New("file too large")
	ErrNotAnImage    = errors.New("unsupported file format, images only")
	ErrMalformedForm = errors.New("malformed multipart form")
)

type Stager struct {
	// Dir defaults to the OS temp dir.
	Dir      string
	MaxBytes int64
}

// Stage parses the multipart body of r and copies the image field into a
// temporary file. It returns "" without error when no file was sent, so the
// use case decides whether the image is required. Other form values stay
// readable through r.FormValue.
func (s Stager) Stage(w http.ResponseWriter, r *http.Request) (string, error) {
	maxBytes := s.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	// Room for the text fields next to the file.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", ErrFileTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}

	file, header, err := r.FormFile(FieldName)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	defer file.Close()

	if header.Size > maxBytes {
		return "", ErrFileTooLarge
	}
	return s.copyImage(file, header)
}

func (s Stager) copyImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", ErrNotAnImage
	}

	out, err := os.CreateTemp(s.Dir, "quill-*"+strings.ToLower(filepath.Ext(header.Filename)))
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err = out.Write(head[:n]); err == nil {
		_, err = io.Copy(out, file)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("write staged file: %w", err)
	}
	return out.Name(), nil
}

// Remove deletes a staged file; a file that is already gone is not an error.
func (Stager) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Package storage provides the filesystem abstraction uploaded images are
// written through.
//
// Two drivers are available out of the box:
//   - "local"  — local filesystem (default), served back under /public
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once (e.g. in internal/server):
//	storage.Connect()
//
//	// default disk
//	storage.Put("uploads/photo.jpg", data)
//	url := storage.URL("uploads/photo.jpg")
package storage

import "io"

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists non-recursive file paths directly inside directory.
	Files(directory string) ([]string, error)
}

// Package storage abstracts where uploaded images live.
//
// Two drivers are available out of the box:
//   - "local"  — local filesystem (default), served back under /storage
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once (in internal/server):
//	storage.Connect()
//
//	// default disk
//	storage.Put("images/offer-1.jpg", data)
//	url := storage.URL("images/offer-1.jpg")
//
//	// named disk
//	storage.Use("s3").Put("images/offer-1.jpg", data)
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

	// Delete removes the file at path. Deleting a missing file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// Package uploads resolves uploaded files and direct URLs to stored media URLs.
package uploads

import (
	"context"
	"fmt"
	"io"
)

// Provider stores media bytes and hands back a stable public URL.
type Provider interface {
	Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error)
	Delete(ctx context.Context, url string) error
	// Owns reports whether url was produced by this provider.
	Owns(url string) bool
}

// UploadError is a provider failure while storing a file.
type UploadError struct {
	Folder   string
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s to %s failed: %v", e.Filename, e.Folder, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Package upload defines the remote-storage hand-off for generated chunk
// files. No backend is implemented yet.
package upload

import (
	"context"
	"errors"
)

// ErrNotImplemented is returned by backends that are still placeholders.
var ErrNotImplemented = errors.New("upload not implemented")

// Uploader pushes a local directory to a remote destination.
type Uploader interface {
	Upload(ctx context.Context, localDir, destinationID string) error
}

// DriveUploader will push chunk files to a Google Drive folder.
type DriveUploader struct{}

// NewDriveUploader creates the placeholder Drive backend.
func NewDriveUploader() *DriveUploader {
	return &DriveUploader{}
}

// Upload is not implemented yet.
func (u *DriveUploader) Upload(ctx context.Context, localDir, destinationID string) error {
	return ErrNotImplemented
}

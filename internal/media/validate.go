// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/sealed-chat/models"
)

// MaxFileSize is the largest media file accepted for upload.
const MaxFileSize = 50 * 1024 * 1024

// ValidateFile checks that a file may be sent as a media message.
func ValidateFile(size int64, mimeType string) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, size, MaxFileSize)
	}
	if _, err := MessageTypeOf(mimeType); err != nil {
		return err
	}
	return nil
}

// MessageTypeOf maps a MIME type to the message type used to send it.
func MessageTypeOf(mimeType string) (models.MessageType, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.MessageImage, nil
	case strings.HasPrefix(mimeType, "video/"):
		return models.MessageVideo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
}

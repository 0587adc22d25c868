// internal/domain/upload/entity.go
package upload

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Image is a stored product image
type Image struct {
	Key         string `json:"key"`
	URL         string `json:"imageUrl"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Extension returns the lower-cased extension of a filename without the dot
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// ContentType guesses the MIME type from the extension
func ContentType(ext string) string {
	if t := mime.TypeByExtension("." + ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// FormatSize returns human-readable file size
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

package model

import "time"

// Document is the metadata record of a stored blob.
// This is a pure domain model with no database-specific dependencies or tags.
// The JSON names are the public API shape.
type Document struct {
	ID          int64     `json:"id"`
	StorageName string    `json:"filename"`
	DisplayName string    `json:"original_filename"`
	Size        int64     `json:"file_size"`
	Extension   string    `json:"file_type"`
	CreatedAt   time.Time `json:"upload_timestamp"`
}

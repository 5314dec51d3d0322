package dto

import "io"

// UploadFile is an incoming file, detached from the HTTP layer.
type UploadFile struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// MediaResponse is returned after an avatar or banner change.
type MediaResponse struct {
	URL string `json:"url"`
}

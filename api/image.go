package api

// UploadResponse is returned by POST /upload
type UploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
}

// DeleteResponse is returned by DELETE /delete-image/:filename
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is returned by every endpoint on failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageList is returned by GET /qr-images
type ImageList []string

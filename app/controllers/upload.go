package controllers

import (
	"mime"
	"net/http"
)

// maxUploadBytes caps multipart form memory buffering (files beyond this
// spill to temp files).
const maxUploadBytes = 32 << 20 // 32 MB

// isMultipart reports whether the request carries multipart form data.
func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "multipart/form-data"
}

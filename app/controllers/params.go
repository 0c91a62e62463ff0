package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// uintParam parses a chi URL parameter as an unsigned id.
func uintParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

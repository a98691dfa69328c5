// Package server handles HTTP requests and middleware for the preview server.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/geoj/internal/geojson"
)

// HandleCollection serves the full feature collection.
func (s *ServerContext) HandleCollection(w http.ResponseWriter, r *http.Request) {
	etag := fmt.Sprintf(`"%x-%x"`, len(s.payload), s.Summary.Features)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.payload)
}

// HandleInfo serves the collection summary.
func (s *ServerContext) HandleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Summary)
}

// HandleFeature serves a single feature by its index.
// Path: /features/{index}
func (s *ServerContext) HandleFeature(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		http.Error(w, "feature index must be an integer", http.StatusBadRequest)
		return
	}

	f, err := s.Collection.At(index)
	if err != nil {
		if errors.Is(err, geojson.ErrIndex) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_ = json.NewEncoder(w).Encode(f.ToMapping())
}

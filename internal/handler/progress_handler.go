package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"

	"lifestyle-dashboard/internal/service"
)

// ProgressTracker exposes ingest progress lookups and the listener
// registry backing the SSE stream.
type ProgressTracker interface {
	GetFileProgress(fileName string) *service.ProgressInfo
	GetAllFileProgress() []*service.ProgressInfo
	RegisterProgressListener(ch chan *service.ProgressInfo)
	UnregisterProgressListener(ch chan *service.ProgressInfo)
}

type ProgressHandler struct {
	tracker ProgressTracker
}

func NewProgressHandler(tracker ProgressTracker) *ProgressHandler {
	return &ProgressHandler{tracker: tracker}
}

// GetFileProgress returns the progress for a specific file.
func (h *ProgressHandler) GetFileProgress(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	if fileName == "" {
		http.Error(w, "fileName parameter is required", http.StatusBadRequest)
		return
	}

	progress := h.tracker.GetFileProgress(filepath.Base(fileName))
	if progress == nil {
		http.Error(w, "File not found or not being processed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}

// GetAllProgress returns the progress for all files being processed.
func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	progress := h.tracker.GetAllFileProgress()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}

// StreamProgress streams progress updates to the client using Server-Sent Events.
func (h *ProgressHandler) StreamProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	progressChan := make(chan *service.ProgressInfo)
	defer close(progressChan)

	h.tracker.RegisterProgressListener(progressChan)
	defer h.tracker.UnregisterProgressListener(progressChan)

	for {
		select {
		case progress := <-progressChan:
			data, err := json.Marshal(progress)
			if err != nil {
				log.Println("Error marshaling progress:", err)
				continue
			}
			_, err = w.Write([]byte("data: " + string(data) + "\n\n"))
			if err != nil {
				log.Println("Error writing SSE data:", err)
				return
			}
			w.(http.Flusher).Flush()

		case <-r.Context().Done():
			log.Println("Client disconnected")
			return
		}
	}
}

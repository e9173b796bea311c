package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// Ingestor processes an uploaded dataset file.
type Ingestor interface {
	ProcessCSV(filePath string) error
}

type UploadHandler struct {
	ingestService Ingestor
	uploadDir     string
}

func NewUploadHandler(ingestService Ingestor, uploadDir string) *UploadHandler {
	return &UploadHandler{ingestService: ingestService, uploadDir: uploadDir}
}

// UploadCSV accepts multipart CSV uploads (field "files"), saves them
// under the upload directory, and processes each file asynchronously.
func (h *UploadHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		http.Error(w, "Failed to create uploads directory", http.StatusInternalServerError)
		return
	}

	err := r.ParseMultipartForm(100 << 20) // 100MB
	if err != nil {
		http.Error(w, "File too large or bad request", http.StatusRequestEntityTooLarge)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	var wg sync.WaitGroup
	fileNames := make([]string, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			log.Println("Error opening file:", err)
			continue
		}

		savePath := filepath.Join(h.uploadDir, filepath.Base(header.Filename))
		outFile, err := os.Create(savePath)
		if err != nil {
			log.Println("Error saving the file:", err)
			file.Close()
			continue
		}

		_, err = io.Copy(outFile, file)
		if err != nil {
			log.Println("Error writing file:", err)
			file.Close()
			outFile.Close()
			continue
		}

		file.Close()
		outFile.Close()
		fileNames = append(fileNames, filepath.Base(header.Filename))

		wg.Add(1)
		go func(filePath string) {
			defer wg.Done()
			if err := h.ingestService.ProcessCSV(filePath); err != nil {
				log.Printf("Error processing file %s: %v", filePath, err)
			}
		}(savePath)
	}

	go func() {
		wg.Wait()
		log.Println("All files processed")
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	response := map[string]interface{}{
		"message": "Files uploaded successfully and processing started",
		"files":   fileNames,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Println("Error encoding response:", err)
	}
}

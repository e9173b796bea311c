package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lifestyle-dashboard/internal/service"
)

type RecordHandler struct {
	recordService *service.RecordService
}

func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// ListRecords returns a filtered, paginated page of student records.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	sortBy := query.Get("sort_by")
	if sortBy == "" {
		sortBy = "student_id"
	}
	sortOrder := query.Get("sort_order")
	if sortOrder == "" {
		sortOrder = "asc"
	}
	stressLevel := query.Get("stress_level")
	gpaMin, _ := strconv.ParseFloat(query.Get("gpa_min"), 64)
	gpaMax, _ := strconv.ParseFloat(query.Get("gpa_max"), 64)
	studyMin, _ := strconv.ParseFloat(query.Get("study_min"), 64)
	studyMax, _ := strconv.ParseFloat(query.Get("study_max"), 64)

	records, totalCount, totalPages, err := h.recordService.ListRecords(page, limit, sortBy, sortOrder, stressLevel, gpaMin, gpaMax, studyMin, studyMax)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data":       records,
		"page":       page,
		"limit":      limit,
		"total":      totalCount,
		"totalPages": totalPages,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

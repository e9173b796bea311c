package handler

import (
	"encoding/json"
	"net/http"

	"lifestyle-dashboard/internal/analytics"
	"lifestyle-dashboard/internal/chart"
	"lifestyle-dashboard/internal/model"
)

// RecordLoader loads the full dataset for the analytics views.
type RecordLoader interface {
	All() ([]model.StudentRecord, error)
}

type ChartHandler struct {
	records RecordLoader
}

func NewChartHandler(records RecordLoader) *ChartHandler {
	return &ChartHandler{records: records}
}

// dataset loads the records and wraps them. A nil return means the
// response has already been written.
func (h *ChartHandler) dataset(w http.ResponseWriter) *analytics.Dataset {
	records, err := h.records.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}
	if len(records) == 0 {
		http.Error(w, "no records loaded", http.StatusNotFound)
		return nil
	}
	return analytics.NewDataset(records)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// Overview returns the landing-panel summary statistics.
func (h *ChartHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, ds.Summary())
}

// GPAStudy returns the GPA-vs-study-hours scatter.
func (h *ChartHandler) GPAStudy(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, chart.GPAStudyScatter(ds.Records))
}

// HabitGroups returns the dual-axis study/sleep quadrant chart.
func (h *ChartHandler) HabitGroups(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, chart.HabitGroupsChart(ds.HabitGroups()))
}

// ActivityByStress returns the focus-group activity bars.
func (h *ChartHandler) ActivityByStress(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, chart.ActivityByStressChart(ds.FocusActivity()))
}

// ActivityBubbles returns the filterable bubble view. Filter values come
// from the gpa, habits and physical query parameters; "All" variants are
// treated as unset.
func (h *ChartHandler) ActivityBubbles(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}

	query := r.URL.Query()
	f := analytics.BubbleFilter{
		GPA:      normalizeFilter(query.Get("gpa")),
		Habits:   normalizeFilter(query.Get("habits")),
		Physical: normalizeFilter(query.Get("physical")),
	}

	view, err := ds.Bubbles(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, chart.ActivityBubblesChart(view))
}

// Paradox returns the paradox group membership and means.
func (h *ChartHandler) Paradox(w http.ResponseWriter, r *http.Request) {
	ds := h.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, ds.Paradox())
}

func normalizeFilter(v string) string {
	if v == "All" || v == "All Students" {
		return ""
	}
	return v
}

package handler

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var dashboardPage []byte

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Index serves the dashboard page. The page fetches the chart JSON
// endpoints and renders them client-side.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardPage)
}

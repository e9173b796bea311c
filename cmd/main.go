package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"lifestyle-dashboard/internal/config"
	"lifestyle-dashboard/internal/database"
	"lifestyle-dashboard/internal/handler"
	"lifestyle-dashboard/internal/service"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db := database.InitDB(cfg)

	// Initialize services
	recordService := service.NewRecordService(db)
	ingestService := service.NewIngestService(db)

	// Initialize handlers
	uploadHandler := handler.NewUploadHandler(ingestService, cfg.UploadDir)
	progressHandler := handler.NewProgressHandler(ingestService)
	recordHandler := handler.NewRecordHandler(recordService)
	chartHandler := handler.NewChartHandler(recordService)
	dashboardHandler := handler.NewDashboardHandler()

	// Setup router
	r := mux.NewRouter()

	r.HandleFunc("/", dashboardHandler.Index).Methods("GET")
	r.HandleFunc("/upload", uploadHandler.UploadCSV).Methods("POST")
	r.HandleFunc("/records", recordHandler.ListRecords).Methods("GET")

	r.HandleFunc("/progress", progressHandler.GetAllProgress).Methods("GET")
	r.HandleFunc("/progress/file", progressHandler.GetFileProgress).Methods("GET")
	r.HandleFunc("/progress/stream", progressHandler.StreamProgress).Methods("GET")

	r.HandleFunc("/api/overview", chartHandler.Overview).Methods("GET")
	r.HandleFunc("/api/charts/gpa-study", chartHandler.GPAStudy).Methods("GET")
	r.HandleFunc("/api/charts/habit-groups", chartHandler.HabitGroups).Methods("GET")
	r.HandleFunc("/api/charts/activity-by-stress", chartHandler.ActivityByStress).Methods("GET")
	r.HandleFunc("/api/charts/activity-bubbles", chartHandler.ActivityBubbles).Methods("GET")
	r.HandleFunc("/api/paradox", chartHandler.Paradox).Methods("GET")

	// Create uploads directory
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal("Failed to create uploads directory:", err)
	}

	// Start server
	log.Println("Server running on", cfg.ServerAddr)
	log.Fatal(http.ListenAndServe(cfg.ServerAddr, handlers.CORS(handlers.AllowedOrigins(cfg.AllowedOrigins))(r)))
}

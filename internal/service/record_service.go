package service

import (
	"math"

	"gorm.io/gorm"

	"lifestyle-dashboard/internal/model"
)

// sortColumns whitelists the sortable columns for ListRecords.
var sortColumns = map[string]string{
	"student_id":     "student_id",
	"study_hours":    "study_hours",
	"sleep_hours":    "sleep_hours",
	"social_hours":   "social_hours",
	"physical_hours": "physical_activity_hours",
	"gpa":            "gpa",
	"stress_level":   "stress_level",
}

type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// ListRecords returns a filtered, sorted page of student records plus
// the total count and page count. Zero-valued range filters are ignored.
func (s *RecordService) ListRecords(page, limit int, sortBy, sortOrder, stressLevel string, gpaMin, gpaMax, studyMin, studyMax float64) ([]model.StudentRecord, int64, int, error) {
	var records []model.StudentRecord
	dbQuery := s.db.Model(&model.StudentRecord{})

	// Apply filters
	if stressLevel != "" {
		dbQuery = dbQuery.Where("stress_level = ?", stressLevel)
	}
	if gpaMin > 0 {
		dbQuery = dbQuery.Where("gpa >= ?", gpaMin)
	}
	if gpaMax > 0 {
		dbQuery = dbQuery.Where("gpa <= ?", gpaMax)
	}
	if studyMin > 0 {
		dbQuery = dbQuery.Where("study_hours >= ?", studyMin)
	}
	if studyMax > 0 {
		dbQuery = dbQuery.Where("study_hours <= ?", studyMax)
	}

	// Apply sorting
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "student_id"
	}
	if sortOrder != "desc" {
		sortOrder = "asc"
	}
	dbQuery = dbQuery.Order(column + " " + sortOrder)

	// Pagination
	var totalCount int64
	if err := dbQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, 0, err
	}
	if err := dbQuery.Offset((page - 1) * limit).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))

	return records, totalCount, totalPages, nil
}

// All loads the full dataset, the working set for the analytics views.
func (s *RecordService) All() ([]model.StudentRecord, error) {
	var records []model.StudentRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

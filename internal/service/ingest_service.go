package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifestyle-dashboard/internal/model"
)

// Dataset CSV header names. Extracurricular hours are optional; the
// analysis never uses them but the column is kept when present.
const (
	colStudentID       = "Student_ID"
	colStudyHours      = "Study_Hours_Per_Day"
	colExtracurricular = "Extracurricular_Hours_Per_Day"
	colSleepHours      = "Sleep_Hours_Per_Day"
	colSocialHours     = "Social_Hours_Per_Day"
	colPhysicalHours   = "Physical_Activity_Hours_Per_Day"
	colGPA             = "GPA"
	colStressLevel     = "Stress_Level"
)

var requiredColumns = []string{
	colStudentID, colStudyHours, colSleepHours, colSocialHours,
	colPhysicalHours, colGPA, colStressLevel,
}

// ProgressInfo tracks one ingest job.
type ProgressInfo struct {
	JobID        string
	FileName     string
	TotalRecords int
	Processed    int
	Skipped      int
	Status       string // "processing", "completed", "error"
	Error        string
	StartTime    time.Time
	EndTime      time.Time
}

type IngestService struct {
	db                *gorm.DB
	fileProgressMap   map[string]*ProgressInfo
	fileProgressLock  sync.RWMutex
	progressListeners map[chan *ProgressInfo]bool // SSE listeners
	listenerLock      sync.RWMutex
}

func NewIngestService(db *gorm.DB) *IngestService {
	return &IngestService{
		db:                db,
		fileProgressMap:   make(map[string]*ProgressInfo),
		progressListeners: make(map[chan *ProgressInfo]bool),
	}
}

// RegisterProgressListener adds a client that receives progress updates.
func (s *IngestService) RegisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.progressListeners[ch] = true
}

// UnregisterProgressListener removes a client from receiving progress updates.
func (s *IngestService) UnregisterProgressListener(ch chan *ProgressInfo) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.progressListeners, ch)
}

// broadcastProgress sends a snapshot of the progress to all registered
// listeners. Listeners receive a copy so they can read it after the
// progress lock is released while workers keep mutating the original.
func (s *IngestService) broadcastProgress(progress *ProgressInfo) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	snapshot := *progress
	for listener := range s.progressListeners {
		select {
		case listener <- &snapshot:
		default:
			// Skip if the listener is not ready
		}
	}
}

func (s *IngestService) updateProgress(fileName string, processed, skipped int) {
	s.fileProgressLock.Lock()
	defer s.fileProgressLock.Unlock()

	if progress, exists := s.fileProgressMap[fileName]; exists {
		progress.Processed += processed
		progress.Skipped += skipped
		if progress.Processed > progress.TotalRecords {
			progress.Processed = progress.TotalRecords
		}
		s.broadcastProgress(progress)
	}
}

func (s *IngestService) updateProgressError(fileName string, errorMsg string) {
	s.fileProgressLock.Lock()
	defer s.fileProgressLock.Unlock()

	if progress, exists := s.fileProgressMap[fileName]; exists {
		progress.Status = "error"
		progress.Error = errorMsg
		progress.EndTime = time.Now()
		s.broadcastProgress(progress)
	}
}

// GetFileProgress returns a copy of the progress entry for a file, or
// nil if the file is unknown.
func (s *IngestService) GetFileProgress(fileName string) *ProgressInfo {
	s.fileProgressLock.RLock()
	defer s.fileProgressLock.RUnlock()

	if progress, exists := s.fileProgressMap[fileName]; exists {
		copyProgress := *progress
		return &copyProgress
	}

	return nil
}

// GetAllFileProgress returns copies of all progress entries.
func (s *IngestService) GetAllFileProgress() []*ProgressInfo {
	s.fileProgressLock.RLock()
	defer s.fileProgressLock.RUnlock()

	result := make([]*ProgressInfo, 0, len(s.fileProgressMap))
	for _, progress := range s.fileProgressMap {
		copyProgress := *progress
		result = append(result, &copyProgress)
	}

	return result
}

// ProcessCSV ingests one dataset file: header-mapped parsing, a worker
// pool sized by file size, batched conflict-ignoring inserts, and
// per-job progress tracking.
func (s *IngestService) ProcessCSV(filePath string) error {
	fileName := filepath.Base(filePath)
	startTime := time.Now()

	s.fileProgressLock.Lock()
	s.fileProgressMap[fileName] = &ProgressInfo{
		JobID:     uuid.NewString(),
		FileName:  fileName,
		Status:    "processing",
		StartTime: startTime,
	}
	s.fileProgressLock.Unlock()

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		s.updateProgressError(fileName, "Failed to get file info: "+err.Error())
		return err
	}

	numWorkers := calculateWorkers(fileInfo.Size())
	log.Printf("Using %d workers for file %s (size: %d bytes)", numWorkers, fileName, fileInfo.Size())

	file, err := os.Open(filePath)
	if err != nil {
		s.updateProgressError(fileName, "Failed to open file: "+err.Error())
		return err
	}
	defer file.Close()

	totalRecords, err := s.countRecords(filePath)
	if err != nil {
		s.updateProgressError(fileName, "Failed to count records: "+err.Error())
		return err
	}
	if totalRecords == 0 {
		err := errors.New("file has no data rows")
		s.updateProgressError(fileName, err.Error())
		return err
	}

	s.fileProgressLock.Lock()
	s.fileProgressMap[fileName].TotalRecords = totalRecords
	s.fileProgressLock.Unlock()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		s.updateProgressError(fileName, "Failed to read header: "+err.Error())
		return err
	}
	cols, err := mapColumns(header)
	if err != nil {
		s.updateProgressError(fileName, err.Error())
		return err
	}

	bufferSize := 1000
	rowCh := make(chan []string, bufferSize)
	var wg sync.WaitGroup
	existingIDs := sync.Map{}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go s.worker(fileName, cols, rowCh, &existingIDs, &wg)
	}

	// Read rows and feed the workers
	go func() {
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				log.Println("Error reading CSV record:", err)
				continue
			}
			rowCh <- row
		}
		close(rowCh)
	}()

	wg.Wait()

	s.fileProgressLock.Lock()
	progress := s.fileProgressMap[fileName]
	if progress.Processed == 0 {
		progress.Status = "error"
		progress.Error = "no valid rows in file"
		progress.EndTime = time.Now()
		s.broadcastProgress(progress)
		s.fileProgressLock.Unlock()
		return errors.New("no valid rows in file")
	}
	progress.Status = "completed"
	progress.EndTime = time.Now()
	s.broadcastProgress(progress)
	s.fileProgressLock.Unlock()

	log.Printf("Processing completed for %s in %v", fileName, time.Since(startTime))

	return nil
}

// mapColumns resolves header names to column indexes and checks that all
// required columns are present.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return cols, nil
}

// parseRow converts one CSV row into a StudentRecord, rejecting negative
// hours, unparseable numbers, and unknown stress labels.
func parseRow(row []string, cols map[string]int) (model.StudentRecord, error) {
	var rec model.StudentRecord

	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	hours := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(get(col), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", col, err)
		}
		if v < 0 {
			return 0, fmt.Errorf("%s: negative hours %v", col, v)
		}
		return v, nil
	}

	rec.StudentID = get(colStudentID)
	if rec.StudentID == "" {
		return rec, errors.New("empty student ID")
	}

	var err error
	if rec.StudyHours, err = hours(colStudyHours); err != nil {
		return rec, err
	}
	if rec.SleepHours, err = hours(colSleepHours); err != nil {
		return rec, err
	}
	if rec.SocialHours, err = hours(colSocialHours); err != nil {
		return rec, err
	}
	if rec.PhysicalActivityHours, err = hours(colPhysicalHours); err != nil {
		return rec, err
	}
	if _, ok := cols[colExtracurricular]; ok {
		if rec.ExtracurricularHours, err = hours(colExtracurricular); err != nil {
			return rec, err
		}
	}

	if rec.GPA, err = strconv.ParseFloat(get(colGPA), 64); err != nil {
		return rec, fmt.Errorf("%s: %w", colGPA, err)
	}

	rec.StressLevel = get(colStressLevel)
	if !model.ValidStressLevel(rec.StressLevel) {
		return rec, fmt.Errorf("unknown stress level %q", rec.StressLevel)
	}

	return rec, nil
}

// calculateWorkers sizes the worker pool from the file size.
func calculateWorkers(fileSize int64) int {
	cpus := runtime.NumCPU()

	if fileSize < 1_000_000 {
		return min(2, cpus)
	}
	if fileSize < 10_000_000 {
		return min(4, cpus)
	}
	if fileSize < 100_000_000 {
		return min(8, cpus)
	}
	return min(16, cpus)
}

func (s *IngestService) worker(fileName string, cols map[string]int, rowCh chan []string, existingIDs *sync.Map, wg *sync.WaitGroup) {
	defer wg.Done()

	var batch []model.StudentRecord
	processed := 0
	skipped := 0
	reportedProcessed := 0
	reportedSkipped := 0

	report := func() {
		s.updateProgress(fileName, processed-reportedProcessed, skipped-reportedSkipped)
		reportedProcessed = processed
		reportedSkipped = skipped
	}

	for row := range rowCh {
		rec, err := parseRow(row, cols)
		if err != nil {
			log.Printf("Skipping row in %s: %v", fileName, err)
			skipped++
			continue
		}

		if _, exists := existingIDs.LoadOrStore(rec.StudentID, true); exists {
			log.Printf("Skipping duplicate student ID: %s", rec.StudentID)
			skipped++
			continue
		}

		batch = append(batch, rec)
		processed++

		if processed%100 == 0 {
			report()
		}
		if len(batch) >= 1000 {
			s.saveBatch(batch)
			batch = nil
		}
	}

	if len(batch) > 0 {
		s.saveBatch(batch)
	}

	report()
}

func (s *IngestService) countRecords(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.Read() // Skip header

	count := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (s *IngestService) saveBatch(records []model.StudentRecord) {
	if len(records) == 0 {
		return
	}

	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
	if err != nil {
		log.Println("Error inserting batch into database:", err)
	}
}

package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lifestyle-dashboard/internal/model"
)

const testHeader = "Student_ID,Study_Hours_Per_Day,Extracurricular_Hours_Per_Day,Sleep_Hours_Per_Day,Social_Hours_Per_Day,Physical_Activity_Hours_Per_Day,GPA,Stress_Level"

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("failed to write test CSV:", err)
	}
	return path
}

func TestNewIngestService(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngestService(db)

	assert.NotNil(t, svc)
	assert.NotNil(t, svc.fileProgressMap)
	assert.NotNil(t, svc.progressListeners)
}

func TestRegisterAndUnregisterProgressListener(t *testing.T) {
	svc := NewIngestService(setupTestDB(t))

	ch := make(chan *ProgressInfo)

	svc.RegisterProgressListener(ch)
	svc.listenerLock.RLock()
	assert.True(t, svc.progressListeners[ch])
	svc.listenerLock.RUnlock()

	svc.UnregisterProgressListener(ch)
	svc.listenerLock.RLock()
	assert.False(t, svc.progressListeners[ch])
	svc.listenerLock.RUnlock()
}

func TestGetFileProgress(t *testing.T) {
	svc := NewIngestService(setupTestDB(t))

	svc.fileProgressLock.Lock()
	svc.fileProgressMap["test.csv"] = &ProgressInfo{JobID: "job-1", FileName: "test.csv", Status: "processing"}
	svc.fileProgressLock.Unlock()

	result := svc.GetFileProgress("test.csv")
	assert.NotNil(t, result)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, "processing", result.Status)

	assert.Nil(t, svc.GetFileProgress("nonexistent.csv"))
}

func TestUpdateProgressBroadcasts(t *testing.T) {
	svc := NewIngestService(setupTestDB(t))
	ch := make(chan *ProgressInfo, 1)
	svc.RegisterProgressListener(ch)

	svc.fileProgressLock.Lock()
	svc.fileProgressMap["test.csv"] = &ProgressInfo{FileName: "test.csv", TotalRecords: 100, Processed: 10}
	svc.fileProgressLock.Unlock()

	svc.updateProgress("test.csv", 5, 2)

	progress := svc.GetFileProgress("test.csv")
	assert.Equal(t, 15, progress.Processed)
	assert.Equal(t, 2, progress.Skipped)

	select {
	case received := <-ch:
		assert.Equal(t, 15, received.Processed)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for progress broadcast")
	}
}

func TestBroadcastProgressSendsSnapshot(t *testing.T) {
	svc := NewIngestService(setupTestDB(t))
	ch := make(chan *ProgressInfo, 2)
	svc.RegisterProgressListener(ch)

	svc.fileProgressLock.Lock()
	svc.fileProgressMap["test.csv"] = &ProgressInfo{FileName: "test.csv", TotalRecords: 100}
	svc.fileProgressLock.Unlock()

	svc.updateProgress("test.csv", 10, 0)
	first := <-ch
	svc.updateProgress("test.csv", 5, 1)
	second := <-ch

	svc.fileProgressLock.RLock()
	internal := svc.fileProgressMap["test.csv"]
	svc.fileProgressLock.RUnlock()

	// listeners get copies, untouched by later updates
	assert.NotSame(t, internal, first)
	assert.NotSame(t, internal, second)
	assert.Equal(t, 10, first.Processed)
	assert.Equal(t, 0, first.Skipped)
	assert.Equal(t, 15, second.Processed)
	assert.Equal(t, 1, second.Skipped)
}

func TestBroadcastProgressConcurrentReaders(t *testing.T) {
	svc := NewIngestService(setupTestDB(t))
	ch := make(chan *ProgressInfo, 512)
	svc.RegisterProgressListener(ch)

	svc.fileProgressLock.Lock()
	svc.fileProgressMap["test.csv"] = &ProgressInfo{FileName: "test.csv", TotalRecords: 10000}
	svc.fileProgressLock.Unlock()

	// Marshal received updates while workers are still reporting, the way
	// the SSE stream does.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range ch {
			if _, err := json.Marshal(p); err != nil {
				t.Error("marshal:", err)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.updateProgress("test.csv", 1, 0)
			}
		}()
	}
	wg.Wait()
	close(ch)
	<-done

	assert.Equal(t, 400, svc.GetFileProgress("test.csv").Processed)
}

func TestMapColumns(t *testing.T) {
	cols, err := mapColumns([]string{"Student_ID", "Study_Hours_Per_Day", "Sleep_Hours_Per_Day", "Social_Hours_Per_Day", "Physical_Activity_Hours_Per_Day", "GPA", "Stress_Level"})
	assert.NoError(t, err)
	assert.Equal(t, 0, cols["Student_ID"])
	assert.Equal(t, 6, cols["Stress_Level"])

	_, err = mapColumns([]string{"Student_ID", "GPA"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestParseRow(t *testing.T) {
	cols, err := mapColumns([]string{"Student_ID", "Study_Hours_Per_Day", "Extracurricular_Hours_Per_Day", "Sleep_Hours_Per_Day", "Social_Hours_Per_Day", "Physical_Activity_Hours_Per_Day", "GPA", "Stress_Level"})
	assert.NoError(t, err)

	rec, err := parseRow([]string{"1", "6.9", "3.8", "8.7", "2.8", "4.3", "2.99", "Moderate"}, cols)
	assert.NoError(t, err)
	assert.Equal(t, "1", rec.StudentID)
	assert.Equal(t, 6.9, rec.StudyHours)
	assert.Equal(t, 3.8, rec.ExtracurricularHours)
	assert.Equal(t, 8.7, rec.SleepHours)
	assert.Equal(t, 2.99, rec.GPA)
	assert.Equal(t, model.StressModerate, rec.StressLevel)

	tests := []struct {
		name string
		row  []string
	}{
		{"empty student id", []string{"", "6.9", "3.8", "8.7", "2.8", "4.3", "2.99", "Moderate"}},
		{"negative hours", []string{"2", "-1", "3.8", "8.7", "2.8", "4.3", "2.99", "Moderate"}},
		{"unparseable hours", []string{"3", "six", "3.8", "8.7", "2.8", "4.3", "2.99", "Moderate"}},
		{"unknown stress", []string{"4", "6.9", "3.8", "8.7", "2.8", "4.3", "2.99", "Extreme"}},
		{"short row", []string{"5", "6.9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRow(tt.row, cols)
			assert.Error(t, err)
		})
	}
}

func TestProcessCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngestService(db)

	content := testHeader + "\n" +
		"1,6.9,3.8,8.7,2.8,4.3,2.99,Moderate\n" +
		"2,5.3,3.5,8.0,4.2,1.2,2.75,Low\n" +
		"3,9.6,2.1,6.3,1.9,1.1,3.89,High\n"
	path := writeTestCSV(t, "lifestyle.csv", content)

	err := svc.ProcessCSV(path)
	assert.NoError(t, err)

	progress := svc.GetFileProgress("lifestyle.csv")
	assert.NotNil(t, progress)
	assert.NotEmpty(t, progress.JobID)
	assert.Equal(t, "completed", progress.Status)
	assert.Equal(t, 3, progress.TotalRecords)
	assert.Equal(t, 3, progress.Processed)
	assert.Equal(t, 0, progress.Skipped)
	assert.False(t, progress.EndTime.IsZero())

	var count int64
	db.Model(&model.StudentRecord{}).Count(&count)
	assert.Equal(t, int64(3), count)

	var rec model.StudentRecord
	db.Where("student_id = ?", "3").First(&rec)
	assert.Equal(t, 9.6, rec.StudyHours)
	assert.Equal(t, 3.89, rec.GPA)
	assert.Equal(t, model.StressHigh, rec.StressLevel)
}

func TestProcessCSVSkipsBadRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngestService(db)

	content := testHeader + "\n" +
		"1,6.9,3.8,8.7,2.8,4.3,2.99,Moderate\n" +
		"2,-5,3.5,8.0,4.2,1.2,2.75,Low\n" + // negative hours
		"1,5.3,3.5,8.0,4.2,1.2,2.75,Low\n" + // duplicate ID
		"4,9.6,2.1,6.3,1.9,1.1,3.89,Panic\n" // unknown stress label
	path := writeTestCSV(t, "dirty.csv", content)

	err := svc.ProcessCSV(path)
	assert.NoError(t, err)

	progress := svc.GetFileProgress("dirty.csv")
	assert.Equal(t, "completed", progress.Status)
	assert.Equal(t, 4, progress.TotalRecords)
	assert.Equal(t, 1, progress.Processed)
	assert.Equal(t, 3, progress.Skipped)

	var count int64
	db.Model(&model.StudentRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProcessCSVShuffledColumns(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngestService(db)

	content := "GPA,Stress_Level,Student_ID,Study_Hours_Per_Day,Sleep_Hours_Per_Day,Social_Hours_Per_Day,Physical_Activity_Hours_Per_Day\n" +
		"3.51,Low,7,4.1,9.0,2.0,3.0\n"
	path := writeTestCSV(t, "shuffled.csv", content)

	err := svc.ProcessCSV(path)
	assert.NoError(t, err)

	var rec model.StudentRecord
	db.Where("student_id = ?", "7").First(&rec)
	assert.Equal(t, 3.51, rec.GPA)
	assert.Equal(t, 4.1, rec.StudyHours)
	assert.Equal(t, 0.0, rec.ExtracurricularHours) // optional column absent
}

func TestProcessCSVErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngestService(db)

	t.Run("missing file", func(t *testing.T) {
		err := svc.ProcessCSV(filepath.Join(t.TempDir(), "missing.csv"))
		assert.Error(t, err)
		progress := svc.GetFileProgress("missing.csv")
		assert.Equal(t, "error", progress.Status)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTestCSV(t, "empty.csv", testHeader+"\n")
		err := svc.ProcessCSV(path)
		assert.Error(t, err)
		assert.Equal(t, "error", svc.GetFileProgress("empty.csv").Status)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeTestCSV(t, "badheader.csv", "Student_ID,GPA\n1,3.0\n")
		err := svc.ProcessCSV(path)
		assert.Error(t, err)
		progress := svc.GetFileProgress("badheader.csv")
		assert.Equal(t, "error", progress.Status)
		assert.Contains(t, progress.Error, "missing column")
	})

	t.Run("no valid rows", func(t *testing.T) {
		path := writeTestCSV(t, "invalid.csv", testHeader+"\n1,bad,3.8,8.7,2.8,4.3,2.99,Moderate\n")
		err := svc.ProcessCSV(path)
		assert.Error(t, err)
		progress := svc.GetFileProgress("invalid.csv")
		assert.Equal(t, "error", progress.Status)
		assert.Equal(t, 1, progress.Skipped)
	})
}

func TestCalculateWorkers(t *testing.T) {
	assert.LessOrEqual(t, calculateWorkers(500), 2)
	assert.LessOrEqual(t, calculateWorkers(5_000_000), 4)
	assert.LessOrEqual(t, calculateWorkers(50_000_000), 8)
	assert.LessOrEqual(t, calculateWorkers(500_000_000), 16)
}

// Package analytics computes the aggregate views behind the dashboard:
// summary statistics, the study/sleep habit quadrants, activity means by
// stress level, and the paradox group filter. All computation is local
// and single-pass over an in-memory record slice.
package analytics

import (
	"lifestyle-dashboard/internal/model"
)

// Dataset wraps the loaded records together with the cut-offs every view
// derives from them. The cut-offs are fixed at construction so that all
// views of one request agree on group membership.
type Dataset struct {
	Records []model.StudentRecord

	MedianStudy    float64
	MedianSleep    float64
	MedianPhysical float64
	MeanStudy      float64
	MeanSleep      float64
	GPACut         float64 // 0.50 quantile of GPA
}

// NewDataset builds a Dataset and precomputes its cut-offs.
func NewDataset(records []model.StudentRecord) *Dataset {
	d := &Dataset{Records: records}
	d.MedianStudy = Median(column(records, studyHours))
	d.MedianSleep = Median(column(records, sleepHours))
	d.MedianPhysical = Median(column(records, physicalHours))
	d.MeanStudy = Mean(column(records, studyHours))
	d.MeanSleep = Mean(column(records, sleepHours))
	d.GPACut = Quantile(column(records, gpa), 0.5)
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Column accessors.
func studyHours(r model.StudentRecord) float64    { return r.StudyHours }
func sleepHours(r model.StudentRecord) float64    { return r.SleepHours }
func socialHours(r model.StudentRecord) float64   { return r.SocialHours }
func physicalHours(r model.StudentRecord) float64 { return r.PhysicalActivityHours }
func gpa(r model.StudentRecord) float64           { return r.GPA }

func column(records []model.StudentRecord, f func(model.StudentRecord) float64) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = f(r)
	}
	return values
}

func filter(records []model.StudentRecord, keep func(model.StudentRecord) bool) []model.StudentRecord {
	var out []model.StudentRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// stressScores maps records onto the 1-3 scale, skipping unknown labels.
func stressScores(records []model.StudentRecord) []float64 {
	var scores []float64
	for _, r := range records {
		if s, ok := model.StressScore(r.StressLevel); ok {
			scores = append(scores, s)
		}
	}
	return scores
}

// MetricSummary holds mean and median for one column.
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summary is the landing-panel overview of the dataset.
type Summary struct {
	Records               int                `json:"records"`
	StudyHours            MetricSummary      `json:"studyHours"`
	SleepHours            MetricSummary      `json:"sleepHours"`
	PhysicalActivityHours MetricSummary      `json:"physicalActivityHours"`
	SocialHours           MetricSummary      `json:"socialHours"`
	GPA                   MetricSummary      `json:"gpa"`
	StressShares          map[string]float64 `json:"stressShares"`      // fraction per level
	AboveMeanGPAShare     float64            `json:"aboveMeanGpaShare"` // fraction above mean GPA
}

// Summary computes the overview statistics.
func (d *Dataset) Summary() Summary {
	s := Summary{
		Records:      len(d.Records),
		StressShares: make(map[string]float64, len(model.StressLevels)),
	}
	if s.Records == 0 {
		return s
	}

	metric := func(f func(model.StudentRecord) float64) MetricSummary {
		values := column(d.Records, f)
		return MetricSummary{Mean: Round2(Mean(values)), Median: Round2(Median(values))}
	}
	s.StudyHours = metric(studyHours)
	s.SleepHours = metric(sleepHours)
	s.PhysicalActivityHours = metric(physicalHours)
	s.SocialHours = metric(socialHours)
	s.GPA = metric(gpa)

	counts := make(map[string]int)
	for _, r := range d.Records {
		counts[r.StressLevel]++
	}
	for _, level := range model.StressLevels {
		s.StressShares[level] = Round2(float64(counts[level]) / float64(s.Records))
	}

	meanGPA := Mean(column(d.Records, gpa))
	above := 0
	for _, r := range d.Records {
		if r.GPA > meanGPA {
			above++
		}
	}
	s.AboveMeanGPAShare = Round2(float64(above) / float64(s.Records))

	return s
}

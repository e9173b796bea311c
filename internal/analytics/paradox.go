package analytics

import (
	"lifestyle-dashboard/internal/model"
)

// ParadoxSummary describes the students whose lifestyle contradicts the
// dataset's broad trend: little study and sleep, lots of physical
// activity, low GPA, high stress.
type ParadoxSummary struct {
	Count             int      `json:"count"`
	Share             float64  `json:"share"`
	MeanStudyHours    float64  `json:"meanStudyHours"`
	MeanSleepHours    float64  `json:"meanSleepHours"`
	MeanPhysicalHours float64  `json:"meanPhysicalHours"`
	MeanSocialHours   float64  `json:"meanSocialHours"`
	MeanGPA           float64  `json:"meanGpa"`
	Members           []string `json:"members"`
}

// InParadoxGroup reports whether a record matches all five conditions:
// study and sleep below their medians, physical activity above its
// median, GPA at or below the 0.50 quantile, and High stress.
func (d *Dataset) InParadoxGroup(r model.StudentRecord) bool {
	return r.StudyHours < d.MedianStudy &&
		r.SleepHours < d.MedianSleep &&
		r.PhysicalActivityHours > d.MedianPhysical &&
		r.GPA <= d.GPACut &&
		r.StressLevel == model.StressHigh
}

// Paradox computes the paradox group membership and its means.
func (d *Dataset) Paradox() ParadoxSummary {
	members := filter(d.Records, d.InParadoxGroup)

	s := ParadoxSummary{Count: len(members)}
	if len(d.Records) > 0 {
		s.Share = Round2(float64(len(members)) / float64(len(d.Records)))
	}
	if len(members) == 0 {
		return s
	}

	s.MeanStudyHours = Round2(Mean(column(members, studyHours)))
	s.MeanSleepHours = Round2(Mean(column(members, sleepHours)))
	s.MeanPhysicalHours = Round2(Mean(column(members, physicalHours)))
	s.MeanSocialHours = Round2(Mean(column(members, socialHours)))
	s.MeanGPA = Round2(Mean(column(members, gpa)))

	s.Members = make([]string, len(members))
	for i, m := range members {
		s.Members[i] = m.StudentID
	}
	return s
}

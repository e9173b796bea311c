package model

// StudentRecord is one row of the student lifestyle dataset: self-reported
// daily hours, a categorical stress level, and the GPA outcome.
type StudentRecord struct {
	StudentID             string  `gorm:"primaryKey" json:"studentId"`
	StudyHours            float64 `json:"studyHours"`
	ExtracurricularHours  float64 `json:"extracurricularHours"`
	SleepHours            float64 `json:"sleepHours"`
	SocialHours           float64 `json:"socialHours"`
	PhysicalActivityHours float64 `json:"physicalActivityHours"`
	GPA                   float64 `json:"gpa"`
	StressLevel           string  `json:"stressLevel"`
}

// Stress level labels as they appear in the dataset.
const (
	StressLow      = "Low"
	StressModerate = "Moderate"
	StressHigh     = "High"
)

// StressLevels lists the valid labels in ascending severity.
var StressLevels = []string{StressLow, StressModerate, StressHigh}

// StressScore maps a stress label onto the 1-3 ordinal scale used by the
// analytics layer. The second return value is false for unknown labels.
func StressScore(level string) (float64, bool) {
	switch level {
	case StressLow:
		return 1, true
	case StressModerate:
		return 2, true
	case StressHigh:
		return 3, true
	}
	return 0, false
}

// StressCategory maps a mean stress score back onto a label:
// <=1.5 Low, <=2.5 Moderate, else High.
func StressCategory(score float64) string {
	switch {
	case score <= 1.5:
		return StressLow
	case score <= 2.5:
		return StressModerate
	default:
		return StressHigh
	}
}

// ValidStressLevel reports whether level is one of the known labels.
func ValidStressLevel(level string) bool {
	_, ok := StressScore(level)
	return ok
}

package analytics

import (
	"lifestyle-dashboard/internal/model"
)

// Habit group labels, in presentation order.
const (
	GroupLowStudyLowSleep   = "Low Study & Low Sleep"
	GroupLowStudyHighSleep  = "Low Study & High Sleep"
	GroupHighStudyLowSleep  = "High Study & Low Sleep"
	GroupHighStudyHighSleep = "High Study & High Sleep"
)

// HabitGroupOrder lists the four study/sleep quadrants in the order the
// dashboard renders them.
var HabitGroupOrder = []string{
	GroupLowStudyLowSleep,
	GroupLowStudyHighSleep,
	GroupHighStudyLowSleep,
	GroupHighStudyHighSleep,
}

// GPA group labels.
const (
	GroupHighGPA = "High GPA"
	GroupLowGPA  = "Low GPA"
)

// Physical activity group labels.
const (
	GroupHighPhysical = "High Physical Activity"
	GroupLowPhysical  = "Low Physical Activity"
)

// HabitGroup is one study/sleep quadrant with its aggregates. DotSize is
// the quadrant's mean GPA scaled into [12, 28] across the four quadrants,
// used for the dual-axis chart markers.
type HabitGroup struct {
	Label          string  `json:"label"`
	Count          int     `json:"count"`
	MeanGPA        float64 `json:"meanGpa"`
	MeanStress     float64 `json:"meanStress"`
	StressCategory string  `json:"stressCategory"`
	DotSize        float64 `json:"dotSize"`
}

// HabitLabel assigns a record to its study/sleep quadrant. "High" means
// strictly above the dataset median.
func (d *Dataset) HabitLabel(r model.StudentRecord) string {
	study := "Low Study"
	if r.StudyHours > d.MedianStudy {
		study = "High Study"
	}
	sleep := "Low Sleep"
	if r.SleepHours > d.MedianSleep {
		sleep = "High Sleep"
	}
	return study + " & " + sleep
}

// GPALabel splits records at the 0.50 GPA quantile.
func (d *Dataset) GPALabel(r model.StudentRecord) string {
	if r.GPA > d.GPACut {
		return GroupHighGPA
	}
	return GroupLowGPA
}

// PhysicalLabel splits records at the median physical activity hours.
func (d *Dataset) PhysicalLabel(r model.StudentRecord) string {
	if r.PhysicalActivityHours > d.MedianPhysical {
		return GroupHighPhysical
	}
	return GroupLowPhysical
}

// HabitGroups aggregates mean GPA and mean stress per quadrant, in
// HabitGroupOrder, and assigns marker sizes from the GPA spread.
func (d *Dataset) HabitGroups() []HabitGroup {
	byLabel := make(map[string][]model.StudentRecord, len(HabitGroupOrder))
	for _, r := range d.Records {
		label := d.HabitLabel(r)
		byLabel[label] = append(byLabel[label], r)
	}

	groups := make([]HabitGroup, 0, len(HabitGroupOrder))
	for _, label := range HabitGroupOrder {
		recs := byLabel[label]
		g := HabitGroup{Label: label, Count: len(recs)}
		if len(recs) > 0 {
			g.MeanGPA = Round2(Mean(column(recs, gpa)))
			g.MeanStress = Round2(Mean(stressScores(recs)))
			g.StressCategory = model.StressCategory(g.MeanStress)
		}
		groups = append(groups, g)
	}

	minGPA, maxGPA := groups[0].MeanGPA, groups[0].MeanGPA
	for _, g := range groups[1:] {
		if g.MeanGPA < minGPA {
			minGPA = g.MeanGPA
		}
		if g.MeanGPA > maxGPA {
			maxGPA = g.MeanGPA
		}
	}
	for i := range groups {
		groups[i].DotSize = Round2(scaleInto(groups[i].MeanGPA, minGPA, maxGPA, 12, 28))
	}

	return groups
}

// ActivityByStress holds the mean physical and social hours of one
// stress level within some subgroup.
type ActivityByStress struct {
	StressLevel  string  `json:"stressLevel"`
	Count        int     `json:"count"`
	MeanPhysical float64 `json:"meanPhysicalHours"`
	MeanSocial   float64 `json:"meanSocialHours"`
}

// FocusActivity aggregates activity hours by stress level for the focus
// group: students above the mean in both study and sleep hours. Levels
// with no students keep Count 0 so the chart can flag them.
func (d *Dataset) FocusActivity() []ActivityByStress {
	focus := filter(d.Records, func(r model.StudentRecord) bool {
		return r.StudyHours > d.MeanStudy && r.SleepHours > d.MeanSleep
	})
	return activityByStress(focus)
}

func activityByStress(records []model.StudentRecord) []ActivityByStress {
	rows := make([]ActivityByStress, 0, len(model.StressLevels))
	for _, level := range model.StressLevels {
		subset := filter(records, func(r model.StudentRecord) bool {
			return r.StressLevel == level
		})
		row := ActivityByStress{StressLevel: level, Count: len(subset)}
		if len(subset) > 0 {
			row.MeanPhysical = Round2(Mean(column(subset, physicalHours)))
			row.MeanSocial = Round2(Mean(column(subset, socialHours)))
		}
		rows = append(rows, row)
	}
	return rows
}

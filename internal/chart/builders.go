package chart

import (
	"fmt"

	"lifestyle-dashboard/internal/analytics"
	"lifestyle-dashboard/internal/model"
)

// GPAStudyScatter builds the scatter of GPA against study hours with one
// series per stress level.
func GPAStudyScatter(records []model.StudentRecord) *Config {
	cfg := &Config{
		ChartType:  "scatter",
		Title:      "Academic Performance (GPA) vs. Study Time, Conditioned by Stress",
		XAxis:      "Study Hours Per Day",
		YAxis:      "GPA (Grade Point Average)",
		ShowLegend: true,
		ShowGrid:   true,
	}

	for _, level := range model.StressLevels {
		series := Series{Name: level, Color: stressScatterColors[level]}
		for _, r := range records {
			if r.StressLevel != level {
				continue
			}
			series.Data = append(series.Data, Point{
				Label: r.StudentID,
				X:     analytics.Round2(r.StudyHours),
				Value: analytics.Round2(r.GPA),
			})
		}
		if len(series.Data) > 0 {
			cfg.Series = append(cfg.Series, series)
		}
	}

	return cfg
}

// HabitGroupsChart builds the dual-axis view of the study/sleep
// quadrants: stress bars on the right axis, GPA markers on the left,
// marker size carrying the GPA magnitude and marker color the stress
// category.
func HabitGroupsChart(groups []analytics.HabitGroup) *Config {
	cfg := &Config{
		ChartType:  "dual_axis",
		Title:      "Mean GPA vs. Mean Stress by Study & Sleep Habits",
		Subtitle:   "Left axis: Mean GPA | Right axis: Mean Stress (1=Low, 3=High)",
		XAxis:      "Study & Sleep Habit Group",
		YAxis:      "Mean GPA",
		YAxisRight: "Mean Stress Score (1=Low, 3=High)",
		ShowLegend: true,
		ShowGrid:   true,
	}

	stress := Series{Name: "Mean Stress", Axis: "right"}
	gpa := Series{Name: "Mean GPA", Axis: "left", Color: "#1F77B4"}
	for _, g := range groups {
		stress.Data = append(stress.Data, Point{
			Label: g.Label,
			Value: g.MeanStress,
			Color: stressBarColors[g.StressCategory],
		})
		gpa.Data = append(gpa.Data, Point{
			Label: g.Label,
			Value: g.MeanGPA,
			Size:  g.DotSize,
			Color: stressDotColors[g.StressCategory],
		})
	}
	cfg.Series = []Series{stress, gpa}

	return cfg
}

// ActivityByStressChart builds the grouped horizontal bars of mean
// physical and social hours per stress level. Stress levels absent from
// the subgroup are dropped and called out in a note.
func ActivityByStressChart(rows []analytics.ActivityByStress) *Config {
	cfg := &Config{
		ChartType:  "grouped_bar",
		Title:      "Mean Activity Hours by Stress Level",
		Subtitle:   "(High Study & High Sleep Students)",
		XAxis:      "Mean Hours Per Day",
		YAxis:      "Activity Type",
		ShowLegend: true,
		ShowGrid:   true,
	}

	// Bars render top-down from High to Low.
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if row.Count == 0 {
			cfg.Notes = append(cfg.Notes,
				fmt.Sprintf("No students in this group reported %s stress levels.", row.StressLevel))
			continue
		}
		cfg.Series = append(cfg.Series, Series{
			Name:  row.StressLevel,
			Color: stressBarColors[row.StressLevel],
			Data: []Point{
				{Label: "Physical Activity", Value: row.MeanPhysical},
				{Label: "Social Activity", Value: row.MeanSocial},
			},
		})
	}

	return cfg
}

// ActivityBubblesChart builds the filterable bubble view: one series per
// activity type, one bubble per stress level present in the subgroup.
func ActivityBubblesChart(view analytics.BubbleView) *Config {
	cfg := &Config{
		ChartType:  "bubble",
		Title:      view.Group,
		Subtitle:   "Stress & GPA for Various Lifestyles",
		XAxis:      "Mean Hours per Day",
		YAxis:      "Stress Level",
		XMax:       view.XMax,
		ShowLegend: true,
		ShowGrid:   true,
	}

	byActivity := make(map[string]*Series)
	for _, activity := range []string{analytics.ActivityPhysical, analytics.ActivitySocial} {
		byActivity[activity] = &Series{Name: activity, Color: activityColors[activity]}
	}
	for _, b := range view.Bubbles {
		series, ok := byActivity[b.ActivityType]
		if !ok {
			continue
		}
		series.Data = append(series.Data, Point{
			Label: b.StressLevel,
			Value: b.MeanHours,
			Size:  b.Size,
		})
	}
	for _, activity := range []string{analytics.ActivityPhysical, analytics.ActivitySocial} {
		cfg.Series = append(cfg.Series, *byActivity[activity])
	}

	return cfg
}

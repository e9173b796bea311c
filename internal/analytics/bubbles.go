package analytics

import (
	"fmt"

	"lifestyle-dashboard/internal/model"
)

// Activity type labels for the bubble view.
const (
	ActivityPhysical = "Physical Activity"
	ActivitySocial   = "Social Hours"
)

// BubbleFilter selects the student subgroup for the bubble view. Empty
// fields mean "no filter". A physical activity filter takes precedence
// over the GPA and habit filters.
type BubbleFilter struct {
	GPA      string // GroupHighGPA or GroupLowGPA
	Habits   string // one of HabitGroupOrder
	Physical string // GroupHighPhysical or GroupLowPhysical
}

// Validate rejects unknown filter values.
func (f BubbleFilter) Validate() error {
	if f.GPA != "" && f.GPA != GroupHighGPA && f.GPA != GroupLowGPA {
		return fmt.Errorf("unknown gpa group %q", f.GPA)
	}
	if f.Habits != "" {
		known := false
		for _, label := range HabitGroupOrder {
			if f.Habits == label {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown habit group %q", f.Habits)
		}
	}
	if f.Physical != "" && f.Physical != GroupHighPhysical && f.Physical != GroupLowPhysical {
		return fmt.Errorf("unknown physical activity group %q", f.Physical)
	}
	return nil
}

// Label names the selected subgroup the way the dashboard titles it.
func (f BubbleFilter) Label() string {
	if f.Physical != "" {
		return f.Physical
	}
	switch {
	case f.GPA == "" && f.Habits == "":
		return "All Students"
	case f.Habits == "":
		return f.GPA
	case f.GPA == "":
		return f.Habits
	default:
		return f.GPA + " - " + f.Habits
	}
}

// Bubble is one marker of the bubble view: mean hours of one activity
// type at one stress level, with the marker size normalized across the
// whole subgroup catalog so sizes stay comparable between filters.
type Bubble struct {
	StressLevel  string  `json:"stressLevel"`
	ActivityType string  `json:"activityType"`
	MeanHours    float64 `json:"meanHours"`
	Size         float64 `json:"size"`
	Group        string  `json:"group"`
}

// BubbleView is the render-ready payload for one filter selection.
type BubbleView struct {
	Group   string   `json:"group"`
	Bubbles []Bubble `json:"bubbles"`
	// XMax is the shared x-axis limit (global max mean hours plus headroom)
	// so the axis does not jump when the filter changes.
	XMax float64 `json:"xMax"`
}

// Bubbles computes the bubble view for a filter selection.
func (d *Dataset) Bubbles(f BubbleFilter) (BubbleView, error) {
	if err := f.Validate(); err != nil {
		return BubbleView{}, err
	}

	lo, hi := d.bubbleBounds()
	view := BubbleView{Group: f.Label(), XMax: Round2(hi * 1.2)}

	for _, row := range activityByStress(d.subset(f)) {
		if row.Count == 0 {
			continue
		}
		view.Bubbles = append(view.Bubbles,
			Bubble{
				StressLevel:  row.StressLevel,
				ActivityType: ActivityPhysical,
				MeanHours:    row.MeanPhysical,
				Size:         Round2(scaleInto(row.MeanPhysical, lo, hi, 12, 30)),
				Group:        view.Group,
			},
			Bubble{
				StressLevel:  row.StressLevel,
				ActivityType: ActivitySocial,
				MeanHours:    row.MeanSocial,
				Size:         Round2(scaleInto(row.MeanSocial, lo, hi, 12, 30)),
				Group:        view.Group,
			},
		)
	}

	return view, nil
}

// subset applies the filter semantics: physical activity wins, otherwise
// GPA and habit filters are combined with AND.
func (d *Dataset) subset(f BubbleFilter) []model.StudentRecord {
	if f.Physical != "" {
		return filter(d.Records, func(r model.StudentRecord) bool {
			return d.PhysicalLabel(r) == f.Physical
		})
	}
	return filter(d.Records, func(r model.StudentRecord) bool {
		if f.GPA != "" && d.GPALabel(r) != f.GPA {
			return false
		}
		if f.Habits != "" && d.HabitLabel(r) != f.Habits {
			return false
		}
		return true
	})
}

// bubbleCatalog enumerates every subgroup the filter widgets can select.
func (d *Dataset) bubbleCatalog() []BubbleFilter {
	catalog := []BubbleFilter{{}}
	for _, g := range []string{GroupHighGPA, GroupLowGPA} {
		catalog = append(catalog, BubbleFilter{GPA: g})
	}
	for _, h := range HabitGroupOrder {
		catalog = append(catalog, BubbleFilter{Habits: h})
	}
	for _, p := range []string{GroupHighPhysical, GroupLowPhysical} {
		catalog = append(catalog, BubbleFilter{Physical: p})
	}
	for _, g := range []string{GroupHighGPA, GroupLowGPA} {
		for _, h := range HabitGroupOrder {
			catalog = append(catalog, BubbleFilter{GPA: g, Habits: h})
		}
	}
	return catalog
}

// bubbleBounds finds the min and max mean hours across the whole
// catalog, the normalization range for marker sizes.
func (d *Dataset) bubbleBounds() (lo, hi float64) {
	first := true
	for _, f := range d.bubbleCatalog() {
		for _, row := range activityByStress(d.subset(f)) {
			if row.Count == 0 {
				continue
			}
			for _, v := range []float64{row.MeanPhysical, row.MeanSocial} {
				if first || v < lo {
					lo = v
				}
				if first || v > hi {
					hi = v
				}
				first = false
			}
		}
	}
	return lo, hi
}

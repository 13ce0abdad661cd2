// ABOUTME: Daily status overview: today's logged types, BMI, pain alerts,
// ABOUTME: logging streak, and a rollup of medication adherence.
package analytics

import (
	"fmt"
	"time"
)

// AlertConfig carries the pain-alert thresholds. Passed in explicitly so
// the engine never reads ambient configuration.
type AlertConfig struct {
	PainThreshold       float64
	PainConsecutiveDays int
}

// StatusParams are the caller-supplied inputs to Status.
type StatusParams struct {
	HeightCm *float64
	Alerts   AlertConfig
}

// StatusData is the full daily overview.
type StatusData struct {
	Date                 string            `json:"date"`
	Profile              ProfileStatus     `json:"profile"`
	Today                TodayStatus       `json:"today"`
	Streaks              Streaks           `json:"streaks"`
	ConsecutivePainAlert []ConsecutivePain `json:"consecutive_pain_alerts"`
	Medications          *MedicationRollup `json:"medications,omitempty"`
}

type ProfileStatus struct {
	HeightCm       *float64 `json:"height_cm,omitempty"`
	LatestWeightKg *float64 `json:"latest_weight_kg,omitempty"`
	BMI            *float64 `json:"bmi,omitempty"`
	BMICategory    *string  `json:"bmi_category,omitempty"`
}

type TodayStatus struct {
	Logged     []string    `json:"logged"`
	PainAlerts []PainAlert `json:"pain_alerts"`
}

type PainAlert struct {
	Type  string   `json:"type"`
	Value float64  `json:"value"`
	Tags  []string `json:"tags"`
}

type Streaks struct {
	LoggingDays int `json:"logging_days"`
}

type ConsecutivePain struct {
	MetricType      string  `json:"metric_type"`
	ConsecutiveDays int     `json:"consecutive_days"`
	LatestValue     float64 `json:"latest_value"`
}

// MedicationRollup summarizes adherence across all active medications.
type MedicationRollup struct {
	ActiveCount        int      `json:"active_count"`
	AdherentToday      int      `json:"adherent_today"`
	NonAdherentToday   int      `json:"non_adherent_today"`
	AsNeeded           int      `json:"as_needed"`
	Missed             []string `json:"missed"`
	OverallAdherence7d *float64 `json:"overall_adherence_7d,omitempty"`
}

// Status computes the daily overview for today.
func (e *Engine) Status(params StatusParams) (*StatusData, error) {
	today := e.today()
	entries, err := e.store.QueryByDate(today)
	if err != nil {
		return nil, err
	}

	logged := make([]string, 0, len(entries))
	for _, m := range entries {
		logged = append(logged, m.MetricType)
	}

	profile := ProfileStatus{HeightCm: params.HeightCm}
	latest, err := e.store.QueryByType("weight", 1)
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		w := latest[0].Value
		profile.LatestWeightKg = &w
		if params.HeightCm != nil {
			hm := *params.HeightCm / 100.0
			bmi := round1(w / (hm * hm))
			profile.BMI = &bmi
			cat := bmiCategory(bmi)
			profile.BMICategory = &cat
		}
	}

	painAlerts := []PainAlert{}
	for _, m := range entries {
		if (m.MetricType == "pain" || m.MetricType == "soreness") && m.Value >= params.Alerts.PainThreshold {
			painAlerts = append(painAlerts, PainAlert{Type: m.MetricType, Value: m.Value, Tags: m.Tags})
		}
	}

	streak, err := e.loggingStreak(today)
	if err != nil {
		return nil, err
	}

	consecutive, err := e.consecutivePain(today, params.Alerts)
	if err != nil {
		return nil, err
	}

	status := &StatusData{
		Date:                 dateKey(today),
		Profile:              profile,
		Today:                TodayStatus{Logged: logged, PainAlerts: painAlerts},
		Streaks:              Streaks{LoggingDays: streak},
		ConsecutivePainAlert: consecutive,
	}

	medStatuses, err := e.AdherenceStatus("", 7)
	if err == nil && len(medStatuses) > 0 {
		status.Medications = rollupMedications(medStatuses)
	}

	return status, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// loggingStreak counts consecutive days with any entry, ending today.
func (e *Engine) loggingStreak(today time.Time) (int, error) {
	dates, err := e.store.DistinctEntryDates(today.AddDate(0, 0, -365), today)
	if err != nil {
		return 0, err
	}
	streak := 0
	check := today
	for _, ds := range dates {
		d, err := time.ParseInLocation("2006-01-02", ds, time.UTC)
		if err != nil {
			continue
		}
		if !d.Equal(check) {
			break
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak, nil
}

// consecutivePain flags pain/soreness at or above threshold for at least
// the configured number of consecutive days, looking back up to 30 days.
func (e *Engine) consecutivePain(today time.Time, alerts AlertConfig) ([]ConsecutivePain, error) {
	result := []ConsecutivePain{}
	for _, painType := range []string{"pain", "soreness"} {
		consecutive := 0
		latestValue := 0.0
		for i := 0; i < 30; i++ {
			day := today.AddDate(0, 0, -i)
			entries, err := e.store.QueryByDate(day)
			if err != nil {
				return nil, err
			}
			dayMax, found := 0.0, false
			for _, m := range entries {
				if m.MetricType == painType && m.Value >= alerts.PainThreshold {
					if !found || m.Value > dayMax {
						dayMax = m.Value
					}
					found = true
				}
			}
			if !found {
				break
			}
			consecutive++
			if i == 0 {
				latestValue = dayMax
			}
		}
		if consecutive >= alerts.PainConsecutiveDays {
			result = append(result, ConsecutivePain{
				MetricType:      painType,
				ConsecutiveDays: consecutive,
				LatestValue:     latestValue,
			})
		}
	}
	return result, nil
}

func rollupMedications(statuses []*MedStatus) *MedicationRollup {
	rollup := &MedicationRollup{ActiveCount: len(statuses), Missed: []string{}}
	var sum float64
	var n int
	for _, s := range statuses {
		switch {
		case s.AdherentToday == nil:
			rollup.AsNeeded++
		case *s.AdherentToday:
			rollup.AdherentToday++
		default:
			rollup.NonAdherentToday++
			if s.RequiredToday != nil {
				rollup.Missed = append(rollup.Missed, fmt.Sprintf("%s (%d/%d taken)", s.Name, s.TakenToday, *s.RequiredToday))
			} else {
				rollup.Missed = append(rollup.Missed, fmt.Sprintf("%s (%d taken this week)", s.Name, s.TakenToday))
			}
		}
		if s.Adherence7d != nil {
			sum += *s.Adherence7d
			n++
		}
	}
	if n > 0 {
		mean := sum / float64(n)
		rollup.OverallAdherence7d = &mean
	}
	return rollup
}

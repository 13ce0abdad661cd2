// ABOUTME: Medication adherence: today's compliance, streaks, windowed ratios.
// ABOUTME: Weekly schedules are satisfied by any dose in the ISO week (Monday start).
package analytics

import (
	"fmt"
	"time"

	"github.com/openvital/vital/internal/models"
)

// MedStatus is the adherence snapshot for one medication. Optional fields
// are nil when the schedule provides nothing to measure against
// (AsNeeded, or the fixed-daily fields for Weekly).
type MedStatus struct {
	Name             string         `json:"name"`
	Dose             *string        `json:"dose,omitempty"`
	Route            string         `json:"route"`
	Frequency        string         `json:"frequency"`
	RequiredToday    *int           `json:"required_today,omitempty"`
	TakenToday       int            `json:"taken_today"`
	AdherentToday    *bool          `json:"adherent_today,omitempty"`
	StreakDays       *int           `json:"streak_days,omitempty"`
	Adherence7d      *float64       `json:"adherence_7d,omitempty"`
	Adherence30d     *float64       `json:"adherence_30d,omitempty"`
	AdherenceHistory []DayAdherence `json:"adherence_history,omitempty"`
}

// DayAdherence is one day of a single-medication adherence history.
type DayAdherence struct {
	Date     string `json:"date"`
	Required int    `json:"required"`
	Taken    int    `json:"taken"`
	Adherent bool   `json:"adherent"`
}

// AdherenceStatus computes adherence for one medication (by name) or all
// active medications (name == ""). The 30-day window and the day-by-day
// history over lastDays are only reported for a single-medication query.
func (e *Engine) AdherenceStatus(name string, lastDays int) ([]*MedStatus, error) {
	var meds []*models.Medication
	if name != "" {
		med, err := e.store.GetMedicationByName(name)
		if err != nil {
			return nil, err
		}
		if med == nil {
			med, err = e.store.GetMedicationByNameAny(name)
			if err != nil {
				return nil, err
			}
		}
		if med == nil {
			return nil, fmt.Errorf("medication %q not found", name)
		}
		meds = []*models.Medication{med}
	} else {
		var err error
		meds, err = e.store.ListMedications(false)
		if err != nil {
			return nil, err
		}
	}

	singleMed := name != ""
	today := e.today()

	var results []*MedStatus
	for _, med := range meds {
		status, err := e.medStatus(med, today, singleMed, lastDays)
		if err != nil {
			return nil, err
		}
		results = append(results, status)
	}
	return results, nil
}

func (e *Engine) medStatus(med *models.Medication, today time.Time, singleMed bool, lastDays int) (*MedStatus, error) {
	status := &MedStatus{
		Name:      med.Name,
		Dose:      med.Dose,
		Route:     string(med.Route),
		Frequency: string(med.Frequency),
	}

	isAsNeeded := med.Frequency == models.FreqAsNeeded
	isWeekly := med.Frequency == models.FreqWeekly

	takenToday, err := e.dosesOn(med.Name, today)
	if err != nil {
		return nil, err
	}
	status.TakenToday = takenToday

	if !isWeekly && !isAsNeeded {
		status.RequiredToday = med.Frequency.RequiredPerDay()
	}

	switch {
	case isAsNeeded:
		// No schedule to measure against; every optional field stays nil.
		return status, nil
	case isWeekly:
		taken, err := e.dosesBetween(med.Name, weekStart(today), today)
		if err != nil {
			return nil, err
		}
		adherent := taken >= 1
		status.AdherentToday = &adherent
	default:
		required := *med.Frequency.RequiredPerDay()
		adherent := takenToday >= required
		status.AdherentToday = &adherent
	}

	startedDate := dateOf(med.StartedAt)
	var stoppedDate *time.Time
	if med.StoppedAt != nil {
		d := dateOf(*med.StoppedAt)
		stoppedDate = &d
	}

	streak, err := e.streak(med, today, startedDate, stoppedDate)
	if err != nil {
		return nil, err
	}
	status.StreakDays = &streak

	status.Adherence7d, err = e.adherenceWindow(med, today, 7, startedDate, stoppedDate)
	if err != nil {
		return nil, err
	}

	if singleMed {
		status.Adherence30d, err = e.adherenceWindow(med, today, 30, startedDate, stoppedDate)
		if err != nil {
			return nil, err
		}
		status.AdherenceHistory, err = e.adherenceHistory(med, today, lastDays, startedDate, stoppedDate)
		if err != nil {
			return nil, err
		}
	}

	return status, nil
}

// dosesOn counts intake events for a medication on one date.
func (e *Engine) dosesOn(name string, day time.Time) (int, error) {
	entries, err := e.store.QueryByDate(day)
	if err != nil {
		return 0, err
	}
	return countDoses(entries, name), nil
}

// dosesBetween counts intake events over an inclusive date range.
func (e *Engine) dosesBetween(name string, from, to time.Time) (int, error) {
	entries, err := e.store.QueryByDateRange(from, to)
	if err != nil {
		return 0, err
	}
	return countDoses(entries, name), nil
}

func countDoses(entries []*models.Metric, name string) int {
	count := 0
	for _, m := range entries {
		if m.MetricType == name && m.IsDose() {
			count++
		}
	}
	return count
}

// dayAdherent reports whether a single day satisfied the schedule. For
// Weekly the whole enclosing ISO week is consulted: any dose satisfies it.
func (e *Engine) dayAdherent(med *models.Medication, day time.Time) (bool, error) {
	if med.Frequency == models.FreqWeekly {
		start := weekStart(day)
		taken, err := e.dosesBetween(med.Name, start, start.AddDate(0, 0, 6))
		if err != nil {
			return false, err
		}
		return taken >= 1, nil
	}

	required := 1
	if r := med.Frequency.RequiredPerDay(); r != nil {
		required = *r
	}
	taken, err := e.dosesOn(med.Name, day)
	if err != nil {
		return false, err
	}
	return taken >= required, nil
}

// dayRequired computes the dose count a day demands. The Weekly rule is
// deliberately generous: a day requires 1 only once a dose was already
// taken earlier in the running week, or on Sunday when the week is still
// unsatisfied; every other unsatisfied weekday requires 0.
func (e *Engine) dayRequired(med *models.Medication, day time.Time) (int, error) {
	if med.Frequency == models.FreqWeekly {
		taken, err := e.dosesBetween(med.Name, weekStart(day), day)
		if err != nil {
			return 0, err
		}
		isSunday := day.Weekday() == time.Sunday
		if taken >= 1 || isSunday {
			return 1, nil
		}
		return 0, nil
	}
	if r := med.Frequency.RequiredPerDay(); r != nil {
		return *r, nil
	}
	return 1, nil
}

// streak walks backward from today counting consecutive adherent days
// (weeks, for Weekly), stopping at the first miss or eligibility boundary.
func (e *Engine) streak(med *models.Medication, today, startedDate time.Time, stoppedDate *time.Time) (int, error) {
	streak := 0

	if med.Frequency == models.FreqWeekly {
		start := weekStart(today)
		for {
			if start.Before(startedDate.AddDate(0, 0, -6)) {
				break
			}
			if stoppedDate != nil && start.After(*stoppedDate) {
				break
			}
			taken, err := e.dosesBetween(med.Name, start, start.AddDate(0, 0, 6))
			if err != nil {
				return 0, err
			}
			if taken < 1 {
				break
			}
			streak++
			start = start.AddDate(0, 0, -7)
		}
		return streak, nil
	}

	for i := 0; ; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Before(startedDate) {
			break
		}
		if stoppedDate != nil && day.After(*stoppedDate) {
			break
		}
		adherent, err := e.dayAdherent(med, day)
		if err != nil {
			return 0, err
		}
		if !adherent {
			break
		}
		streak++
	}
	return streak, nil
}

// adherenceWindow computes adherent/eligible over the trailing window.
// Days outside [started, stopped] are not eligible; zero eligible days
// yields nil rather than a ratio.
func (e *Engine) adherenceWindow(med *models.Medication, today time.Time, window int, startedDate time.Time, stoppedDate *time.Time) (*float64, error) {
	eligible := 0
	adherent := 0
	for i := 0; i < window; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Before(startedDate) {
			continue
		}
		if stoppedDate != nil && day.After(*stoppedDate) {
			continue
		}
		eligible++
		ok, err := e.dayAdherent(med, day)
		if err != nil {
			return nil, err
		}
		if ok {
			adherent++
		}
	}
	if eligible == 0 {
		return nil, nil
	}
	ratio := float64(adherent) / float64(eligible)
	return &ratio, nil
}

// adherenceHistory reports the last lastDays eligible days, newest first.
func (e *Engine) adherenceHistory(med *models.Medication, today time.Time, lastDays int, startedDate time.Time, stoppedDate *time.Time) ([]DayAdherence, error) {
	var days []DayAdherence
	for i := 0; i < lastDays; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Before(startedDate) {
			break
		}
		if stoppedDate != nil && day.After(*stoppedDate) {
			continue
		}
		required, err := e.dayRequired(med, day)
		if err != nil {
			return nil, err
		}
		taken, err := e.dosesOn(med.Name, day)
		if err != nil {
			return nil, err
		}
		days = append(days, DayAdherence{
			Date:     dateKey(day),
			Required: required,
			Taken:    taken,
			Adherent: taken >= required,
		})
	}
	return days, nil
}

package calendar

import "github.com/julianstephens/habitgrid/internal/models"

// Severity is the completion class of a day
type Severity int

const (
	// SeverityNoData marks a day with nothing to measure
	SeverityNoData Severity = iota
	// SeverityNone marks a day where nothing was completed
	SeverityNone
	// SeverityPartial marks any partial progress not covered below
	SeverityPartial
	// SeverityMandatoryOnly marks every mandatory habit done and no optional one
	SeverityMandatoryOnly
	// SeverityAllComplete marks every habit done
	SeverityAllComplete
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none-complete"
	case SeverityPartial:
		return "partial-mixed"
	case SeverityMandatoryOnly:
		return "mandatory-only-complete"
	case SeverityAllComplete:
		return "all-complete"
	default:
		return "no-data"
	}
}

// Classify maps a DayStatus to its severity. A day with no mandatory habits
// never counts as mandatory-only complete.
func Classify(d models.DayStatus) Severity {
	total := d.Total()
	done := d.Completed()

	switch {
	case total == 0:
		return SeverityNoData
	case done == total:
		return SeverityAllComplete
	case d.MandatoryTotal > 0 && d.MandatoryCompleted == d.MandatoryTotal && d.OptionalCompleted == 0:
		return SeverityMandatoryOnly
	case done == 0:
		return SeverityNone
	default:
		return SeverityPartial
	}
}

// ClassifyDate classifies date within an aggregation result. Dates absent
// from the sparse map have no recorded activity.
func ClassifyDate(statuses map[string]models.DayStatus, date string) Severity {
	status, ok := statuses[date]
	if !ok {
		return SeverityNoData
	}
	return Classify(status)
}

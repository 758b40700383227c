package interview

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ProductID identifies this exporter in PRODID.
const ProductID = "-//warp//crm-calendar interviews//EN"

// ExportICS serializes interviews as an iCalendar feed so recruiters can
// subscribe to the schedule. stamp is written as DTSTAMP on every event.
func ExportICS(name string, interviews []Interview, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, iv := range interviews {
		ev := cal.AddEvent(iv.ID + "@crm-calendar")
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(iv.ScheduledAt.UTC())
		ev.SetEndAt(iv.EndsAt().UTC())
		ev.SetSummary(summary(iv))
		if desc := description(iv); desc != "" {
			ev.SetDescription(desc)
		}
		if iv.Location != "" {
			ev.SetLocation(iv.Location)
		}
		ev.SetStatus(icsStatus(iv.Status))
	}

	return cal.Serialize()
}

func summary(iv Interview) string {
	if iv.Position == "" {
		return fmt.Sprintf("Interview: %s", iv.CandidateName)
	}
	return fmt.Sprintf("Interview: %s (%s)", iv.CandidateName, iv.Position)
}

func description(iv Interview) string {
	var lines []string
	if iv.Type != "" {
		lines = append(lines, "Type: "+string(iv.Type))
	}
	if iv.Interviewer != "" {
		lines = append(lines, "Interviewer: "+iv.Interviewer)
	}
	if iv.Notes != "" {
		lines = append(lines, iv.Notes)
	}
	return strings.Join(lines, "\n")
}

func icsStatus(s Status) ics.ObjectStatus {
	switch s {
	case StatusCancelled, StatusNoShow:
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusConfirmed
	}
}

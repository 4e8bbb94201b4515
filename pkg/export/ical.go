// Package export renders directory data in interchange formats: an iCalendar
// feed of birthdays and a vCard address book.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	icalVersion = "2.0"
	icalProdID  = "-//corp-social//Birthdays//EN"
	icalDomain  = "corp-social"

	propCalendarName = "X-WR-CALNAME"
)

// emptyCalendar is served when there are no events; the encoder rejects a
// VCALENDAR without components.
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + icalProdID + "\r\nCALSCALE:GREGORIAN\r\nEND:VCALENDAR\r\n"

// BirthdayEvent is one all-day occurrence.
type BirthdayEvent struct {
	UserID  string
	Summary string
	Date    time.Time
}

// BirthdayCalendar encodes events as an all-day iCalendar feed named name.
func BirthdayCalendar(name string, events []BirthdayEvent, stamp time.Time) ([]byte, error) {
	if len(events) == 0 {
		return []byte(emptyCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, icalVersion)
	cal.Props.SetText(ical.PropProductID, icalProdID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	// Bare value: SetText would add VALUE=TEXT.
	calName := ical.NewProp(propCalendarName)
	calName.Value = name
	cal.Props.Set(calName)

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for _, e := range events {
		event := ical.NewEvent()
		// UID is stable per user and year.
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@%s", e.UserID, e.Date.Year(), icalDomain))
		event.Props.SetText(ical.PropSummary, e.Summary)
		event.Props.Set(dtStamp)

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(e.Date)
		event.Props.Set(dtStart)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("export: encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
)

// DocKey is the content document holding the weekly template.
const DocKey = "timetable"

// Slot types; only open slots can receive student reservations.
const (
	SlotOpen   = "open"
	SlotTeam   = "team"
	SlotClosed = "closed"
)

type TimeSlot struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
	Label string `json:"label" bson:"label"`
	Type  string `json:"type" bson:"type"`
}

type DaySchedule struct {
	Day   string     `json:"day" bson:"day"`
	Slots []TimeSlot `json:"slots" bson:"slots"`
}

// dayNames is Sunday-first, matching how the admin panel stores the
// week. The index is time.Weekday (Sunday = 0).
var dayNames = [7]string{"Zondag", "Maandag", "Dinsdag", "Woensdag", "Donderdag", "Vrijdag", "Zaterdag"}

// DayName maps a "YYYY-MM-DD" date to its Dutch weekday name, or ""
// for unparseable dates. The weekday of a calendar date is pure
// calendar math; no timezone is involved.
func DayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return dayNames[int(t.Weekday())]
}

// For returns the template for the given date, or nil when the week
// has no entry for that day.
func For(days []DaySchedule, date string) *DaySchedule {
	name := DayName(date)
	for i := range days {
		if days[i].Day == name {
			return &days[i]
		}
	}
	return nil
}

// Load reads the weekly template. A missing document is an empty week.
func Load(ctx context.Context) ([]DaySchedule, error) {
	var doc struct {
		Schedule []DaySchedule `bson:"schedule"`
	}
	err := db.Content.Get(ctx, DocKey, &doc)
	if err == docstore.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Schedule, nil
}

// addEventSlot inserts a team slot into the named day, keeping the
// day's slots ordered by start time. Days not present in the template
// are left untouched, as the original admin flow assumes the week
// structure already exists.
func addEventSlot(days []DaySchedule, dayName string, slot TimeSlot) ([]DaySchedule, bool) {
	for i := range days {
		if days[i].Day != dayName {
			continue
		}
		days[i].Slots = append(days[i].Slots, slot)
		sort.SliceStable(days[i].Slots, func(a, b int) bool {
			return days[i].Slots[a].Start < days[i].Slots[b].Start
		})
		return days, true
	}
	return days, false
}

// removeEventSlot deletes the slot matching label, start and end from
// the named day. Reports whether anything changed.
func removeEventSlot(days []DaySchedule, dayName string, slot TimeSlot) ([]DaySchedule, bool) {
	changed := false
	for i := range days {
		if days[i].Day != dayName {
			continue
		}
		kept := days[i].Slots[:0]
		for _, s := range days[i].Slots {
			if s.Label == slot.Label && s.Start == slot.Start && s.End == slot.End {
				changed = true
				continue
			}
			kept = append(kept, s)
		}
		days[i].Slots = kept
	}
	return days, changed
}

// InsertEventSlot blocks an event's window in the weekly template as a
// team slot labeled "EVENT: <title>".
func InsertEventSlot(ctx context.Context, date, start, end, title string) error {
	days, err := Load(ctx)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}
	days, changed := addEventSlot(days, DayName(date), TimeSlot{
		Start: start,
		End:   end,
		Label: "EVENT: " + title,
		Type:  SlotTeam,
	})
	if !changed {
		return nil
	}
	return db.Content.SetField(ctx, DocKey, "schedule", days)
}

// RemoveEventSlot undoes InsertEventSlot for a deleted event.
func RemoveEventSlot(ctx context.Context, date, start, end, title string) error {
	days, err := Load(ctx)
	if err != nil {
		return err
	}
	days, changed := removeEventSlot(days, DayName(date), TimeSlot{
		Start: start,
		End:   end,
		Label: "EVENT: " + title,
	})
	if !changed {
		return nil
	}
	return db.Content.SetField(ctx, DocKey, "schedule", days)
}

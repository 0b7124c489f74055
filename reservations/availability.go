package reservations

import (
	"time"

	"github.com/MilanMareels/ap-gaming-hub/schedule"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// Query describes one availability computation for a booking that does
// not exist yet.
type Query struct {
	Date            string
	DurationMinutes int
	Inventory       string
	Controllers     int
	ExtraController bool
}

// AvailableStarts lists the legal "HH:MM" start times for the query,
// ascending. It is a pure function of the snapshot: calling it twice
// with the same inputs gives the same output, and the caller re-invokes
// it whenever the underlying documents change. This is the optimistic
// pre-filter; the admission gate re-checks everything on submit.
func AvailableStarts(snap Snapshot, q Query, now time.Time) []string {
	if q.Date == "" || q.DurationMinutes <= 0 {
		return nil
	}

	day := schedule.For(snap.Schedule, q.Date)
	if day == nil {
		return nil
	}

	isToday := q.Date == now.Format("2006-01-02")
	nowMins := now.Hour()*60 + now.Minute()

	var starts []string
	for _, slot := range day.Slots {
		if slot.Type != schedule.SlotOpen {
			continue
		}
		cur, err := utils.TimeToMinutes(slot.Start)
		if err != nil {
			continue
		}
		slotEnd, err := utils.TimeToMinutes(slot.End)
		if err != nil {
			continue
		}

		for ; cur+q.DurationMinutes <= slotEnd; cur += strideMinutes {
			// never offer starts that have already passed today
			if isToday && cur <= nowMins {
				continue
			}
			if windowFits(snap, q, cur, cur+q.DurationMinutes) {
				starts = append(starts, utils.MinutesToTime(cur))
			}
		}
	}
	return starts
}

// windowFits checks hardware and controller capacity for one candidate
// window. The calculator counts every ledger record on the date,
// whatever its status; the stricter booked/present filter belongs to
// the admission gate.
func windowFits(snap Snapshot, q Query, start, end int) bool {
	isSwitch := q.Inventory == KindSwitch

	hardwareInUse := 0
	controllersInUse := 0
	for _, r := range snap.Reservations {
		if r.Date != q.Date {
			continue
		}
		rStart, rEnd := r.Span()
		if !overlaps(rStart, rEnd, start, end) {
			continue
		}
		if r.Inventory == q.Inventory {
			hardwareInUse++
		}
		if isSwitch == (r.Inventory == KindSwitch) {
			controllersInUse += r.Controllers
		}
	}

	if hardwareInUse >= snap.Inventory[q.Inventory] {
		return false
	}

	need := controllerDemand(q.Inventory, q.Controllers, q.ExtraController)
	if need == 0 {
		return true
	}
	return controllersInUse+need <= snap.Inventory[poolFor(q.Inventory)]
}

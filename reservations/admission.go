package reservations

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/ratelim"
	"github.com/MilanMareels/ap-gaming-hub/schedule"
	"github.com/MilanMareels/ap-gaming-hub/settings"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

var sNumberPattern = regexp.MustCompile(`(?i)^s[0-9]+$`)

const studentEmailSuffix = "@student.ap.be"

// normalized carries the request fields after parsing, so the pure
// validation steps never touch strings again.
type normalized struct {
	sNumber     string // trimmed, lower-cased
	start       int
	end         int
	duration    int
	endTime     string
	controllers int
}

// checkRequest runs the client-input checks that need no store state:
// identity format, required fields, duration parsing. Order matches
// the rejection precedence.
func checkRequest(req Request) (normalized, *RejectionError) {
	var n normalized

	if !sNumberPattern.MatchString(req.SNumber) {
		return n, errInvalidSNumber
	}
	if !strings.HasSuffix(req.Email, studentEmailSuffix) {
		return n, errInvalidEmail
	}
	if req.Date == "" || req.StartTime == "" {
		return n, errMissingFields
	}

	start, err := utils.TimeToMinutes(req.StartTime)
	if err != nil {
		return n, errMissingFields
	}

	// older clients omit the duration or post junk; fall back to an hour
	duration, err := strconv.Atoi(req.Duration)
	if err != nil {
		duration = durationDefault
	}
	if duration <= 0 {
		return n, errInvalidDuration
	}

	n.sNumber = normalizeSNumber(req.SNumber)
	n.start = start
	n.duration = duration
	n.end = start + duration
	n.endTime = utils.MinutesToTime(n.end)
	n.controllers = controllerDemand(req.Inventory, req.Controllers, req.ExtraController)
	return n, nil
}

// validate applies the store-dependent rules to a fresh snapshot, in
// the fixed order the UI messages depend on: strikes, cooldown, the
// student's own overlap/gap/daily-cap, then system-wide hardware and
// controller capacity. The first broken rule wins.
func validate(req Request, n normalized, snap Snapshot, now time.Time) *RejectionError {
	// three no-show strikes block any new booking until an admin resets
	strikes := 0
	for _, entry := range snap.NoShows {
		if normalizeSNumber(entry.SNumber) == n.sNumber {
			strikes++
		}
	}
	if strikes >= strikeLimit {
		return errBlocked
	}

	// double-click guard: one submission per student per minute
	for _, r := range snap.Reservations {
		if normalizeSNumber(r.SNumber) != n.sNumber || r.CreatedAt == "" {
			continue
		}
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err == nil && now.Sub(created) < cooldownWindow {
			return errDuplicate
		}
	}

	// the student's own reservations on this date, any hardware kind
	totalDuration := 0
	hasOverlap := false
	hasInsufficientGap := false
	for _, r := range snap.Reservations {
		if r.Date != req.Date || !r.IsActive() {
			continue
		}
		if normalizeSNumber(r.SNumber) != n.sNumber {
			continue
		}
		rStart, rEnd := r.Span()
		totalDuration += rEnd - rStart

		if overlaps(n.start, n.end, rStart, rEnd) {
			hasOverlap = true
		} else if n.start < rEnd+minGapMinutes && n.end > rStart-minGapMinutes {
			hasInsufficientGap = true
		}
	}
	if hasOverlap {
		return errOverlap
	}
	if hasInsufficientGap {
		return errGap
	}
	if totalDuration+n.duration > dailyCapMinutes {
		return errDailyCap(totalDuration)
	}

	// system-wide capacity for the exact window; only records that hold
	// a unit count here
	maxHardware := snap.Inventory[req.Inventory]
	var conflicting []Reservation
	for _, r := range snap.Reservations {
		if r.Date != req.Date || r.Inventory != req.Inventory || !r.Occupies() {
			continue
		}
		rStart, rEnd := r.Span()
		if overlaps(rStart, rEnd, n.start, n.end) {
			conflicting = append(conflicting, r)
		}
	}
	if len(conflicting) >= maxHardware {
		return errHardwareFull
	}

	if n.controllers > 0 {
		isSwitch := req.Inventory == KindSwitch
		pool := snap.Inventory[poolFor(req.Inventory)]
		inUse := sumControllers(conflicting, isSwitch)
		if inUse+n.controllers > pool {
			return errControllersFull(isSwitch, pool-inUse)
		}
	}

	return nil
}

// LoadSnapshot re-reads the authoritative documents. Missing documents
// mean empty content; the inventory falls back to the historical
// defaults the admin panel seeds.
func LoadSnapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Inventory: settings.DefaultInventory()}

	var resDoc struct {
		Reservations []Reservation `bson:"reservations"`
	}
	if err := db.Content.Get(ctx, "reservations", &resDoc); err != nil && err != docstore.ErrNotFound {
		return snap, err
	}
	snap.Reservations = resDoc.Reservations

	var logsDoc struct {
		NoShows []NoShowEntry `bson:"noShows"`
	}
	if err := db.Content.Get(ctx, "logs", &logsDoc); err != nil && err != docstore.ErrNotFound {
		return snap, err
	}
	snap.NoShows = logsDoc.NoShows

	var settingsDoc struct {
		Inventory map[string]int `bson:"inventory"`
	}
	if err := db.Content.Get(ctx, "settings", &settingsDoc); err != nil && err != docstore.ErrNotFound {
		return snap, err
	}
	if settingsDoc.Inventory != nil {
		snap.Inventory = settingsDoc.Inventory
	}

	days, err := schedule.Load(ctx)
	if err != nil {
		return snap, err
	}
	snap.Schedule = days

	return snap, nil
}

// Submit is the authoritative admission gate. It throttles the client,
// validates the request against a snapshot read at call time, and on
// success appends exactly one record to the ledger with an atomic
// union-append. No partial writes: every rejection leaves the store
// untouched.
//
// Two submissions racing for the last free unit can both pass the
// capacity check against their own snapshots; the append itself is
// atomic, so no record is ever lost, but the overshoot is accepted
// behavior inherited from the original system.
func Submit(ctx context.Context, limiter *ratelim.KeyLimiter, clientKey string, req Request, now time.Time) (Reservation, *RejectionError) {
	if limiter != nil && !limiter.Allow(clientKey) {
		return Reservation{}, errRateLimited
	}

	n, rej := checkRequest(req)
	if rej != nil {
		return Reservation{}, rej
	}

	snap, err := LoadSnapshot(ctx)
	if err != nil {
		return Reservation{}, errStore
	}

	if rej := validate(req, n, snap, now); rej != nil {
		return Reservation{}, rej
	}

	res := Reservation{
		ID:          utils.TimeID(now),
		SNumber:     req.SNumber,
		Email:       req.Email,
		Inventory:   req.Inventory,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     n.endTime,
		Controllers: n.controllers,
		Status:      StatusBooked,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
	if err := db.Content.Push(ctx, "reservations", "reservations", res); err != nil {
		return Reservation{}, errStore
	}
	return res, nil
}

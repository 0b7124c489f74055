package reservations

import (
	"strings"
	"time"

	"github.com/MilanMareels/ap-gaming-hub/schedule"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// Hardware kinds. The inventory document may introduce more; these are
// the ones with special controller-pool rules.
const (
	KindPC     = "pc"
	KindPS5    = "ps5"
	KindSwitch = "switch"
)

// Accessory pools. Switch controllers live in their own pool and never
// draw from the PlayStation/PC pool.
const (
	PoolControllers       = "controller"
	PoolSwitchControllers = "Nintendo Controllers"
)

// Reservation statuses. A not-present record only exists until the
// moderation path moves it into the no-show log.
const (
	StatusBooked     = "booked"
	StatusPresent    = "present"
	StatusNotPresent = "not-present"
)

const (
	durationDefault = 60  // minutes, for absent or legacy duration fields
	dailyCapMinutes = 240 // per student per date
	minGapMinutes   = 30  // between two reservations of one student
	strideMinutes   = 30  // candidate start times step
	strikeLimit     = 3   // no-shows before a student is blocked
	cooldownWindow  = time.Minute
)

// RateLimitWindow is the per-client submit throttle; the Dutch
// rejection message quotes it, so keep the two in sync.
const RateLimitWindow = 10 * time.Second

// Reservation is one booked usage of one hardware unit for one window.
// Legacy records may carry a duration instead of an end time; resolve
// intervals through Span, never through EndTime directly.
type Reservation struct {
	ID          string `json:"id" bson:"id"`
	SNumber     string `json:"sNumber" bson:"sNumber"`
	Email       string `json:"email" bson:"email"`
	Inventory   string `json:"inventory" bson:"inventory"`
	Date        string `json:"date" bson:"date"`
	StartTime   string `json:"startTime" bson:"startTime"`
	EndTime     string `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Duration    int    `json:"duration,omitempty" bson:"duration,omitempty"`
	Controllers int    `json:"controllers" bson:"controllers"`
	Status      string `json:"status" bson:"status"`
	CreatedAt   string `json:"createdAt" bson:"createdAt"`
}

// Span returns the reservation's window as [start, end) in minutes
// since midnight. Records without an end time fall back to their
// duration field, and to 60 minutes when that is absent too.
func (r Reservation) Span() (start, end int) {
	start, err := utils.TimeToMinutes(r.StartTime)
	if err != nil {
		return 0, 0
	}
	if r.EndTime != "" {
		if end, err = utils.TimeToMinutes(r.EndTime); err == nil {
			return start, end
		}
	}
	d := r.Duration
	if d <= 0 {
		d = durationDefault
	}
	return start, start + d
}

// IsActive reports whether the record counts against the student's own
// overlap, gap and daily-cap rules.
func (r Reservation) IsActive() bool {
	return r.Status == StatusBooked || r.Status == StatusPresent || r.Status == StatusNotPresent
}

// Occupies reports whether the record holds a physical unit; this is
// the filter for system-wide capacity.
func (r Reservation) Occupies() bool {
	return r.Status == StatusBooked || r.Status == StatusPresent
}

// NoShowEntry is a reservation snapshot moved into the no-show log.
type NoShowEntry struct {
	Reservation `bson:",inline"`
	LoggedAt    string `json:"loggedAt" bson:"loggedAt"`
}

// Request is the booking submission payload. Duration arrives as a
// string for backward compatibility with older clients that post form
// values.
type Request struct {
	SNumber         string `json:"sNumber"`
	Email           string `json:"email"`
	Inventory       string `json:"inventory"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	Duration        string `json:"duration"`
	Controllers     int    `json:"controllers"`
	ExtraController bool   `json:"extraController"`
}

// Snapshot bundles the documents the core reads. Both the availability
// calculator and the admission gate are pure functions of a Snapshot,
// re-read fresh at every call.
type Snapshot struct {
	Reservations []Reservation
	NoShows      []NoShowEntry
	Inventory    map[string]int
	Schedule     []schedule.DaySchedule
}

func normalizeSNumber(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// controllerDemand is how many controllers the request draws from its
// pool: the chosen count on consoles, at most one extra on PC.
func controllerDemand(kind string, controllers int, extra bool) int {
	if controllers < 0 {
		controllers = 0
	}
	switch kind {
	case KindSwitch, KindPS5:
		return controllers
	default:
		if extra {
			return 1
		}
		return 0
	}
}

func poolFor(kind string) string {
	if kind == KindSwitch {
		return PoolSwitchControllers
	}
	return PoolControllers
}

// overlaps is the half-open interval test: [aStart,aEnd) and
// [bStart,bEnd) overlap iff aStart < bEnd && aEnd > bStart.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// sumControllers totals the controllers of the pool the request draws
// from: Switch reservations for the Nintendo pool, everything else for
// the shared PlayStation/PC pool.
func sumControllers(res []Reservation, isSwitch bool) int {
	total := 0
	for _, r := range res {
		if isSwitch == (r.Inventory == KindSwitch) {
			total += r.Controllers
		}
	}
	return total
}

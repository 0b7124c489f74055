package reservations

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/MilanMareels/ap-gaming-hub/globals"
	"github.com/MilanMareels/ap-gaming-hub/ratelim"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// GetAvailability recomputes the legal start times for the form's
// current inputs. The UI calls this on every input change and on every
// live-document update; the answer depends only on the query and the
// current snapshot.
func GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()

	duration := durationDefault
	if v := qs.Get("duration"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid duration")
			return
		}
		duration = d
	}
	controllers, _ := strconv.Atoi(qs.Get("controllers"))

	q := Query{
		Date:            qs.Get("date"),
		DurationMinutes: duration,
		Inventory:       qs.Get("inventory"),
		Controllers:     controllers,
		ExtraController: qs.Get("extraController") == "true",
	}
	if q.Inventory == "" {
		q.Inventory = KindPC
	}

	snap, err := LoadSnapshot(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	starts := AvailableStarts(snap, q, time.Now().In(globals.Location))
	if starts == nil {
		starts = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"availableStartTimes": starts})
}

// CreateReservation is the booking submission endpoint, throttled per
// originating address.
func CreateReservation(limiter *ratelim.KeyLimiter) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"success": false,
				"error":   "Ongeldig verzoek.",
			})
			return
		}

		now := time.Now().In(globals.Location)
		res, rej := Submit(r.Context(), limiter, utils.ClientIP(r), req, now)
		if rej != nil {
			utils.RespondWithJSON(w, statusFor(rej.Kind), utils.M{
				"success": false,
				"error":   rej.Message,
				"kind":    rej.Kind,
			})
			return
		}

		utils.RespondWithJSON(w, http.StatusCreated, utils.M{
			"success":       true,
			"reservationId": res.ID,
		})
	}
}

// GetReservations lists the ledger, optionally filtered by date. The
// booking page shows the day's occupancy from this.
func GetReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := LoadSnapshot(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	list := snap.Reservations
	if date := r.URL.Query().Get("date"); date != "" {
		filtered := make([]Reservation, 0, len(list))
		for _, res := range list {
			if res.Date == date {
				filtered = append(filtered, res)
			}
		}
		list = filtered
	}
	if list == nil {
		list = []Reservation{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": list})
}

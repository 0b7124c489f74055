package reservations

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// Moderation handlers: the admin panel's reservation operations. These
// live outside the booking path; the admission gate never mutates
// statuses or the no-show log.

// UpdateStatus handles attendance marking. "present" updates the record
// in place. "not-present" moves the record: it leaves the ledger and
// enters the no-show log with a loggedAt stamp, which is where strike
// counting happens.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if body.Status != StatusBooked && body.Status != StatusPresent && body.Status != StatusNotPresent {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown status")
		return
	}

	var doc struct {
		Reservations []Reservation `bson:"reservations"`
	}
	err := db.Content.Get(r.Context(), "reservations", &doc)
	if err == docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "reservation not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	idx := -1
	for i, res := range doc.Reservations {
		if res.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		utils.RespondWithError(w, http.StatusNotFound, "reservation not found")
		return
	}

	if body.Status == StatusNotPresent {
		moved := doc.Reservations[idx]
		moved.Status = StatusNotPresent

		remaining := append(doc.Reservations[:idx:idx], doc.Reservations[idx+1:]...)
		if err := db.Content.SetField(r.Context(), "reservations", "reservations", remaining); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}

		entry := NoShowEntry{
			Reservation: moved,
			LoggedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := db.Content.Push(r.Context(), "logs", "noShows", entry); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}
	} else {
		doc.Reservations[idx].Status = body.Status
		if err := db.Content.SetField(r.Context(), "reservations", "reservations", doc.Reservations); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// Delete removes a reservation outright (admin cleanup).
func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := db.Content.Pull(r.Context(), "reservations", "reservations", bson.M{"id": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetNoShows lists the strike log.
func GetNoShows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc struct {
		NoShows []NoShowEntry `bson:"noShows"`
	}
	err := db.Content.Get(r.Context(), "logs", &doc)
	if err != nil && err != docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if doc.NoShows == nil {
		doc.NoShows = []NoShowEntry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"noShows": doc.NoShows})
}

// ResetStrikes drops every no-show entry for the student, unblocking
// them. Matching is exact on the stored sNumber, as in the admin panel.
func ResetStrikes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sNumber := ps.ByName("snumber")

	var doc struct {
		NoShows []NoShowEntry `bson:"noShows"`
	}
	err := db.Content.Get(r.Context(), "logs", &doc)
	if err == docstore.ErrNotFound {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	kept := make([]NoShowEntry, 0, len(doc.NoShows))
	for _, entry := range doc.NoShows {
		if entry.SNumber != sNumber {
			kept = append(kept, entry)
		}
	}
	if err := db.Content.SetField(r.Context(), "logs", "noShows", kept); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

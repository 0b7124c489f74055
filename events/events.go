package events

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/schedule"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

const DocKey = "events"

// EventItem is a hub event (tournament, LAN night, team training).
// Time is the display window "HH:MM - HH:MM"; when an event is added
// its window is also blocked in the weekly timetable as a team slot.
type EventItem struct {
	ID    string `json:"id" bson:"id"`
	Title string `json:"title" bson:"title"`
	Date  string `json:"date" bson:"date"`
	Time  string `json:"time" bson:"time"`
	Type  string `json:"type" bson:"type"`
}

func load(w http.ResponseWriter, r *http.Request) ([]EventItem, bool) {
	var doc struct {
		Events []EventItem `bson:"events"`
	}
	err := db.Content.Get(r.Context(), DocKey, &doc)
	if err != nil && err != docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return nil, false
	}
	return doc.Events, true
}

func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, ok := load(w, r)
	if !ok {
		return
	}
	if list == nil {
		list = []EventItem{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"events": list})
}

// AddEvent appends the event and blocks its window in the timetable
// (admin). The two writes are not transactional; the timetable sync is
// best-effort, matching the original admin flow.
func AddEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item EventItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if item.Title == "" || item.Date == "" || item.Time == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if item.ID == "" {
		item.ID = utils.GetUUID()
	}

	if err := db.Content.Push(r.Context(), DocKey, "events", item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if start, end, ok := splitWindow(item.Time); ok {
		if err := schedule.InsertEventSlot(r.Context(), item.Date, start, end, item.Title); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "event saved, timetable sync failed")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"event": item})
}

// DeleteEvent removes the event and unblocks its timetable slot (admin).
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	list, ok := load(w, r)
	if !ok {
		return
	}
	var item *EventItem
	for i := range list {
		if list[i].ID == id {
			item = &list[i]
			break
		}
	}
	if item == nil {
		utils.RespondWithError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := db.Content.Pull(r.Context(), DocKey, "events", bson.M{"id": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if start, end, ok := splitWindow(item.Time); ok {
		if err := schedule.RemoveEventSlot(r.Context(), item.Date, start, end, item.Title); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "event removed, timetable sync failed")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// splitWindow parses the "HH:MM - HH:MM" display window.
func splitWindow(window string) (start, end string, ok bool) {
	parts := strings.Split(window, " - ")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

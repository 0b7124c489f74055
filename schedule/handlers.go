package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// GetSchedule returns the weekly timetable for the booking form, the
// opening-hours page and the signage display.
func GetSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	days, err := Load(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if days == nil {
		days = []DaySchedule{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"schedule": days})
}

// SaveTimetable overwrites the whole weekly template (admin).
func SaveTimetable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Schedule []DaySchedule `json:"schedule"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	for _, day := range body.Schedule {
		for _, s := range day.Slots {
			if _, err := utils.TimeToMinutes(s.Start); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "invalid slot time: "+s.Start)
				return
			}
			if _, err := utils.TimeToMinutes(s.End); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "invalid slot time: "+s.End)
				return
			}
		}
	}

	if err := db.Content.SetField(r.Context(), DocKey, "schedule", body.Schedule); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

package rosters

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

const DocKey = "rosters"

// Player is one line-up entry of a game's competitive roster.
type Player struct {
	Name   string `json:"name" bson:"name"`
	Handle string `json:"handle" bson:"handle"`
	Role   string `json:"role" bson:"role"`
	Rank   string `json:"rank" bson:"rank"`
}

func load(w http.ResponseWriter, r *http.Request) (map[string][]Player, bool) {
	var doc struct {
		Data map[string][]Player `bson:"data"`
	}
	err := db.Content.Get(r.Context(), DocKey, &doc)
	if err != nil && err != docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return nil, false
	}
	if doc.Data == nil {
		doc.Data = map[string][]Player{}
	}
	return doc.Data, true
}

func GetRosters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data, ok := load(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"data": data})
}

// AddPlayer appends a player to a game's roster (admin).
func AddPlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	game := ps.ByName("game")

	var player Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if player.Name == "" && player.Handle == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	data, ok := load(w, r)
	if !ok {
		return
	}
	data[game] = append(data[game], player)

	if err := db.Content.SetField(r.Context(), DocKey, "data", data); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"data": data})
}

// DeletePlayer removes a roster entry by position (admin); the panel
// lists players in stored order.
func DeletePlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	game := ps.ByName("game")
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil || index < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid index")
		return
	}

	data, ok := load(w, r)
	if !ok {
		return
	}
	list, exists := data[game]
	if !exists || index >= len(list) {
		utils.RespondWithError(w, http.StatusNotFound, "player not found")
		return
	}
	data[game] = append(list[:index:index], list[index+1:]...)

	if err := db.Content.SetField(r.Context(), DocKey, "data", data); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package highscores

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/rdx"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

const DocKey = "highscores"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

const cacheKey = "highscores:approved"
const cacheTTL = 30 * time.Second

// Highscore is a submitted score; it only appears on the public board
// after an admin approves it.
type Highscore struct {
	ID        string `json:"id" bson:"id"`
	Game      string `json:"game" bson:"game"`
	Player    string `json:"player" bson:"player"`
	Score     int    `json:"score" bson:"score"`
	Status    string `json:"status" bson:"status"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

func load(w http.ResponseWriter, r *http.Request) ([]Highscore, bool) {
	var doc struct {
		Highscores []Highscore `bson:"highscores"`
	}
	err := db.Content.Get(r.Context(), DocKey, &doc)
	if err != nil && err != docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return nil, false
	}
	return doc.Highscores, true
}

// GetHighscores serves the approved board, best first. Served from
// Redis when fresh; the signage display polls this.
func GetHighscores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, ok := rdx.GetCached(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	list, ok := load(w, r)
	if !ok {
		return
	}

	approved := make([]Highscore, 0, len(list))
	for _, h := range list {
		if h.Status == StatusApproved {
			approved = append(approved, h)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Score > approved[j].Score
	})

	payload, err := json.Marshal(utils.M{"highscores": approved})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "encode error")
		return
	}
	rdx.SetCached(cacheKey, payload, cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// SubmitScore takes a public submission; it enters the moderation
// queue as pending.
func SubmitScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var h Highscore
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if h.Game == "" || h.Player == "" || h.Score <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	h.ID = utils.GetUUID()
	h.Status = StatusPending
	h.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := db.Content.Push(r.Context(), DocKey, "highscores", h); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"highscore": h})
}

// ApproveScore publishes a pending score (admin).
func ApproveScore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	list, ok := load(w, r)
	if !ok {
		return
	}
	found := false
	for i := range list {
		if list[i].ID == id {
			list[i].Status = StatusApproved
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "highscore not found")
		return
	}

	if err := db.Content.SetField(r.Context(), DocKey, "highscores", list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	rdx.Invalidate(cacheKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DeleteScore rejects or retracts a score (admin).
func DeleteScore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := db.Content.Pull(r.Context(), DocKey, "highscores", bson.M{"id": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	rdx.Invalidate(cacheKey)
	w.WriteHeader(http.StatusNoContent)
}

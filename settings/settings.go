package settings

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/docstore"
	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// DocKey is the content document carrying site settings, the form
// lists and the hardware inventory.
const DocKey = "settings"

type SiteSettings struct {
	GoogleFormURL string `json:"googleFormUrl" bson:"googleFormUrl"`
}

// Lists feed the admin panel's dropdowns and the public forms.
type Lists struct {
	RosterGames    []string `json:"rosterGames" bson:"rosterGames"`
	HighscoreGames []string `json:"highscoreGames" bson:"highscoreGames"`
	EventTypes     []string `json:"eventTypes" bson:"eventTypes"`
}

type document struct {
	Settings  SiteSettings   `json:"settings" bson:"settings"`
	Lists     Lists          `json:"lists" bson:"lists"`
	Inventory map[string]int `json:"inventory" bson:"inventory"`
}

// DefaultInventory is the fallback the admission gate uses when no
// settings document exists yet; it mirrors the values the original
// deployment was seeded with. Accessory pools default to zero, which
// rejects any controller demand until an admin fills them in.
func DefaultInventory() map[string]int {
	return map[string]int{"pc": 5, "ps5": 1, "switch": 1}
}

// GetSettings serves the public form metadata: inventory counts and
// the configured lists.
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc document
	err := db.Content.Get(r.Context(), DocKey, &doc)
	if err != nil && err != docstore.ErrNotFound {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if doc.Inventory == nil {
		doc.Inventory = map[string]int{
			"pc": 5, "ps5": 1, "switch": 1,
			"controller": 8, "Nintendo Controllers": 4,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// UpdateSettings overwrites settings, lists and inventory at once
// (admin panel save button).
func UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !validInventory(doc.Inventory) {
		utils.RespondWithError(w, http.StatusBadRequest, "inventory counts must be zero or positive")
		return
	}

	err := db.Content.SetFields(r.Context(), DocKey, bson.M{
		"settings":  doc.Settings,
		"lists":     doc.Lists,
		"inventory": doc.Inventory,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// UpdateInventory replaces only the inventory map (quick stock edits).
func UpdateInventory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Inventory map[string]int `json:"inventory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !validInventory(body.Inventory) {
		utils.RespondWithError(w, http.StatusBadRequest, "inventory counts must be zero or positive")
		return
	}

	if err := db.Content.SetField(r.Context(), DocKey, "inventory", body.Inventory); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func validInventory(inv map[string]int) bool {
	for _, count := range inv {
		if count < 0 {
			return false
		}
	}
	return true
}

package globals

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret    []byte
	TicketSecret []byte
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

// Location is the facility's wall clock. Opening hours and the
// "today" cutoff are evaluated in this timezone, never UTC.
var Location *time.Location

func init() {
	_ = godotenv.Load()

	JwtSecret = []byte(envOr("JWT_SECRET", "your_secret_key"))
	TicketSecret = []byte(envOr("TICKET_SECRET", "your-very-secret-key"))

	loc, err := time.LoadLocation(envOr("FACILITY_TZ", "Europe/Brussels"))
	if err != nil {
		loc = time.Local
	}
	Location = loc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

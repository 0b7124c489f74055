package utils

import (
	rndm "math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- ID Generators ---

var digitRunes = []rune("0123456789")

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// TimeID returns an opaque time-derived token; the random suffix keeps
// two tokens minted in the same millisecond apart.
func TimeID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + GenerateRandomDigitString(4)
}

// --- Request Helpers ---

// ClientIP returns the originating address: first hop of
// X-Forwarded-For when present, the socket address otherwise.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}

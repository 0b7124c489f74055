package reservations

import (
	"fmt"
	"net/http"
	"strconv"
)

// Kind is the stable rejection reason exposed next to the user-facing
// message. The messages stay in Dutch, exactly as the UI shows them.
type Kind string

const (
	KindRateLimited           Kind = "rate-limited"
	KindInvalidIdentity       Kind = "invalid-identity"
	KindMissingField          Kind = "missing-field"
	KindBlocked               Kind = "blocked"
	KindDuplicateSubmission   Kind = "duplicate-submission"
	KindOverlap               Kind = "overlap"
	KindInsufficientGap       Kind = "insufficient-gap"
	KindDailyCapExceeded      Kind = "daily-cap-exceeded"
	KindHardwareUnavailable   Kind = "hardware-unavailable"
	KindControllerUnavailable Kind = "controller-unavailable"
	KindStoreError            Kind = "store-error"
)

type RejectionError struct {
	Kind    Kind
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func reject(kind Kind, msg string) *RejectionError {
	return &RejectionError{Kind: kind, Message: msg}
}

var (
	errRateLimited     = reject(KindRateLimited, "Te veel verzoeken. Wacht 10 seconden.")
	errInvalidSNumber  = reject(KindInvalidIdentity, "Gebruik een geldig s-nummer (s + cijfers).")
	errInvalidEmail    = reject(KindInvalidIdentity, "Gebruik je officiële AP email.")
	errMissingFields   = reject(KindMissingField, "Datum en starttijd zijn verplicht.")
	errInvalidDuration = reject(KindMissingField, "Ongeldige duur.")
	errBlocked         = reject(KindBlocked, "Je account is geblokkeerd vanwege 3 no-shows. Contacteer een admin.")
	errDuplicate       = reject(KindDuplicateSubmission, "Je mag maar 1 reservatie per minuut maken.")
	errOverlap         = reject(KindOverlap, "Je hebt al een reservatie die overlapt met dit tijdslot.")
	errGap             = reject(KindInsufficientGap, "Er moet minstens 30 minuten tussen je reservaties zitten.")
	errHardwareFull    = reject(KindHardwareUnavailable, "Dit tijdslot is niet meer beschikbaar (hardware volzet).")
	errStore           = reject(KindStoreError, "Er ging iets mis bij het opslaan. Probeer het opnieuw.")
)

func errDailyCap(totalMinutes int) *RejectionError {
	hours := strconv.FormatFloat(float64(totalMinutes)/60, 'f', -1, 64)
	return reject(KindDailyCapExceeded,
		fmt.Sprintf("Je mag maximaal 4 uur per dag reserveren. Je hebt al %s uur.", hours))
}

func errControllersFull(isSwitch bool, left int) *RejectionError {
	prefix := ""
	if isSwitch {
		prefix = "Nintendo "
	}
	return reject(KindControllerUnavailable,
		fmt.Sprintf("Niet genoeg %scontrollers beschikbaar (%d over).", prefix, left))
}

// statusFor maps a rejection to an HTTP status; the UI mostly reads
// the body, but the codes keep curl sessions honest.
func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidIdentity, KindMissingField:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindBlocked:
		return http.StatusForbidden
	case KindStoreError:
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

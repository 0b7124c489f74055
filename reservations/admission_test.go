package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{
		SNumber:   "s123456",
		Email:     "s123456@student.ap.be",
		Inventory: KindPC,
		Date:      testDate,
		StartTime: "14:00",
		Duration:  "60",
	}
}

func mustNormalize(t *testing.T, req Request) normalized {
	t.Helper()
	n, rej := checkRequest(req)
	require.Nil(t, rej)
	return n
}

func TestCheckRequestIdentity(t *testing.T) {
	req := baseRequest()
	req.SNumber = "x123456"
	_, rej := checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindInvalidIdentity, rej.Kind)

	req = baseRequest()
	req.SNumber = "S123456" // upper-case prefix is fine
	_, rej = checkRequest(req)
	assert.Nil(t, rej)

	req = baseRequest()
	req.Email = "s123456@gmail.com"
	_, rej = checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindInvalidIdentity, rej.Kind)
	assert.Equal(t, "Gebruik je officiële AP email.", rej.Message)
}

func TestCheckRequestRequiredFields(t *testing.T) {
	req := baseRequest()
	req.Date = ""
	_, rej := checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindMissingField, rej.Kind)

	req = baseRequest()
	req.StartTime = ""
	_, rej = checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindMissingField, rej.Kind)

	req = baseRequest()
	req.StartTime = "25:99"
	_, rej = checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindMissingField, rej.Kind)
}

func TestCheckRequestDuration(t *testing.T) {
	// junk falls back to an hour
	req := baseRequest()
	req.Duration = "soon"
	n := mustNormalize(t, req)
	assert.Equal(t, 60, n.duration)
	assert.Equal(t, "15:00", n.endTime)

	// an explicit non-positive duration is a client bug, not a legacy client
	req = baseRequest()
	req.Duration = "0"
	_, rej := checkRequest(req)
	require.NotNil(t, rej)
	assert.Equal(t, KindMissingField, rej.Kind)
	assert.Equal(t, "Ongeldige duur.", rej.Message)

	req = baseRequest()
	req.Duration = "-30"
	_, rej = checkRequest(req)
	assert.NotNil(t, rej)
}

func TestCheckRequestNormalizes(t *testing.T) {
	req := baseRequest()
	req.SNumber = "S123456"
	req.Duration = "90"
	req.Inventory = KindSwitch
	req.Controllers = 2

	n := mustNormalize(t, req)
	assert.Equal(t, "s123456", n.sNumber)
	assert.Equal(t, 840, n.start)
	assert.Equal(t, 930, n.end)
	assert.Equal(t, "15:30", n.endTime)
	assert.Equal(t, 2, n.controllers)
}

func TestValidateBlocksAfterThreeStrikes(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	snap := testSnapshot()
	for i := 0; i < 3; i++ {
		snap.NoShows = append(snap.NoShows, NoShowEntry{
			Reservation: Reservation{SNumber: "S123456"},
		})
	}

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindBlocked, rej.Kind)
	assert.Equal(t, "Je account is geblokkeerd vanwege 3 no-shows. Contacteer een admin.", rej.Message)
}

func TestValidateTwoStrikesStillBook(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	snap := testSnapshot()
	snap.NoShows = []NoShowEntry{
		{Reservation: Reservation{SNumber: "s123456"}},
		{Reservation: Reservation{SNumber: "s123456"}},
		{Reservation: Reservation{SNumber: "s999999"}},
	}

	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateCooldown(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	recent := Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: "2026-03-01",
		StartTime: "10:00", EndTime: "11:00", Status: StatusBooked,
		CreatedAt: testNow.Add(-30 * time.Second).Format(time.RFC3339),
	}
	snap := testSnapshot(recent)

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindDuplicateSubmission, rej.Kind)

	// the same record a minute later no longer throttles
	snap.Reservations[0].CreatedAt = testNow.Add(-61 * time.Second).Format(time.RFC3339)
	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateOverlapWithOwnReservation(t *testing.T) {
	req := baseRequest() // 14:00-15:00 on a pc
	n := mustNormalize(t, req)

	// own booking on other hardware still collides
	snap := testSnapshot(Reservation{
		SNumber: "s123456", Inventory: KindPS5, Date: testDate,
		StartTime: "14:30", EndTime: "15:30", Status: StatusBooked,
	})

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindOverlap, rej.Kind)
}

func TestValidateBackToBackIsNoOverlap(t *testing.T) {
	req := baseRequest() // 14:00-15:00
	n := mustNormalize(t, req)

	// half-open windows: ending at 14:00 does not overlap, but it does
	// sit inside the 30-minute gap
	snap := testSnapshot(Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: testDate,
		StartTime: "13:00", EndTime: "14:00", Status: StatusBooked,
	})

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindInsufficientGap, rej.Kind)
	assert.Equal(t, "Er moet minstens 30 minuten tussen je reservaties zitten.", rej.Message)
}

func TestValidateGapOfFifteenMinutes(t *testing.T) {
	req := baseRequest() // 14:00-15:00
	n := mustNormalize(t, req)

	snap := testSnapshot(Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: testDate,
		StartTime: "13:00", EndTime: "13:45", Status: StatusBooked,
	})

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindInsufficientGap, rej.Kind)
}

func TestValidateGapOfExactlyThirtyMinutes(t *testing.T) {
	req := baseRequest() // 14:00-15:00
	n := mustNormalize(t, req)

	snap := testSnapshot(Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: testDate,
		StartTime: "13:00", EndTime: "13:30", Status: StatusBooked,
	})

	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateOverlapWinsOverGap(t *testing.T) {
	req := baseRequest() // 14:00-15:00
	n := mustNormalize(t, req)

	// one record overlaps, another only breaks the gap; the overlap
	// message is the one the student sees
	snap := testSnapshot(
		Reservation{
			SNumber: "s123456", Inventory: KindPC, Date: testDate,
			StartTime: "15:15", EndTime: "16:15", Status: StatusBooked,
		},
		Reservation{
			SNumber: "s123456", Inventory: KindPC, Date: testDate,
			StartTime: "14:30", EndTime: "15:00", Status: StatusBooked,
		},
	)

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindOverlap, rej.Kind)
}

func TestValidateDailyCap(t *testing.T) {
	// 180 minutes already booked plus a 60-minute request hits the cap
	// exactly and passes
	req := baseRequest()
	req.StartTime = "13:30"
	n := mustNormalize(t, req)

	existing := Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: testDate,
		StartTime: "10:00", EndTime: "13:00", Status: StatusBooked,
	}
	assert.Nil(t, validate(req, n, testSnapshot(existing), testNow))

	// one minute more is over
	req.Duration = "61"
	n = mustNormalize(t, req)
	rej := validate(req, n, testSnapshot(existing), testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindDailyCapExceeded, rej.Kind)
	assert.Equal(t, "Je mag maximaal 4 uur per dag reserveren. Je hebt al 3 uur.", rej.Message)
}

func TestValidateDailyCapCountsNotPresent(t *testing.T) {
	// a not-present record still counts toward the student's daily total
	// until moderation moves it to the no-show log
	req := baseRequest()
	req.StartTime = "16:00"
	req.Duration = "120"
	n := mustNormalize(t, req)

	snap := testSnapshot(
		Reservation{
			SNumber: "s123456", Inventory: KindPC, Date: testDate,
			StartTime: "10:00", EndTime: "12:00", Status: StatusNotPresent,
		},
		Reservation{
			SNumber: "s123456", Inventory: KindPC, Date: testDate,
			StartTime: "13:00", EndTime: "15:00", Status: StatusPresent,
		},
	)

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindDailyCapExceeded, rej.Kind)
}

func TestValidateHardwareFull(t *testing.T) {
	req := baseRequest() // one pc in the test inventory
	n := mustNormalize(t, req)

	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindPC, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Status: StatusBooked,
	})

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindHardwareUnavailable, rej.Kind)
	assert.Equal(t, "Dit tijdslot is niet meer beschikbaar (hardware volzet).", rej.Message)
}

func TestValidateNotPresentFreesHardware(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	// capacity only counts records that hold a unit
	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindPC, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Status: StatusNotPresent,
	})

	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateHardwareIsPerKind(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	// a full ps5 does not block a pc request
	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindPS5, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Status: StatusBooked,
	})

	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateControllerPoolExhausted(t *testing.T) {
	req := baseRequest()
	req.Inventory = KindSwitch
	req.Controllers = 1
	n := mustNormalize(t, req)

	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindSwitch, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Controllers: 2, Status: StatusBooked,
	})
	snap.Inventory[KindSwitch] = 2

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindControllerUnavailable, rej.Kind)
	assert.Equal(t, "Niet genoeg Nintendo controllers beschikbaar (0 over).", rej.Message)
}

func TestValidateExtraControllerOnPC(t *testing.T) {
	req := baseRequest()
	req.ExtraController = true
	n := mustNormalize(t, req)
	require.Equal(t, 1, n.controllers)

	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindPC, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Controllers: 2, Status: StatusBooked,
	})
	snap.Inventory[KindPC] = 2

	rej := validate(req, n, snap, testNow)
	require.NotNil(t, rej)
	assert.Equal(t, KindControllerUnavailable, rej.Kind)
	assert.Equal(t, "Niet genoeg controllers beschikbaar (0 over).", rej.Message)
}

func TestValidateControllerCheckSkippedWithoutDemand(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)
	require.Zero(t, n.controllers)

	// shared pool fully drawn by a parallel pc booking; a request
	// without controllers sails past
	snap := testSnapshot(Reservation{
		SNumber: "s999999", Inventory: KindPC, Date: testDate,
		StartTime: "13:30", EndTime: "14:30", Controllers: 2, Status: StatusBooked,
	})
	snap.Inventory[KindPC] = 2

	assert.Nil(t, validate(req, n, snap, testNow))
}

func TestValidateOtherDateIsIgnored(t *testing.T) {
	req := baseRequest()
	n := mustNormalize(t, req)

	snap := testSnapshot(Reservation{
		SNumber: "s123456", Inventory: KindPC, Date: "2026-03-11",
		StartTime: "14:00", EndTime: "15:00", Status: StatusBooked,
	})

	assert.Nil(t, validate(req, n, snap, testNow))
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayNameIsSundayFirst(t *testing.T) {
	cases := map[string]string{
		"2026-08-30": "Zondag",
		"2026-08-31": "Maandag",
		"2026-09-01": "Dinsdag",
		"2026-09-02": "Woensdag",
		"2026-09-03": "Donderdag",
		"2026-09-04": "Vrijdag",
		"2026-09-05": "Zaterdag",
	}
	for date, want := range cases {
		assert.Equal(t, want, DayName(date), date)
	}
}

func TestDayNameOnBadDate(t *testing.T) {
	assert.Equal(t, "", DayName(""))
	assert.Equal(t, "", DayName("31-08-2026"))
	assert.Equal(t, "", DayName("2026-13-40"))
}

func TestForFindsMatchingDay(t *testing.T) {
	week := []DaySchedule{
		{Day: "Maandag", Slots: []TimeSlot{{Start: "10:00", End: "18:00", Type: SlotOpen}}},
		{Day: "Dinsdag"},
	}

	day := For(week, "2026-08-31") // a Monday
	require.NotNil(t, day)
	assert.Equal(t, "Maandag", day.Day)

	assert.Nil(t, For(week, "2026-09-02"), "Wednesday has no template entry")
}

func TestAddEventSlotKeepsSlotsSorted(t *testing.T) {
	week := []DaySchedule{
		{Day: "Vrijdag", Slots: []TimeSlot{
			{Start: "10:00", End: "12:00", Label: "Vrij spelen", Type: SlotOpen},
			{Start: "18:00", End: "22:00", Label: "Avond", Type: SlotOpen},
		}},
	}

	week, changed := addEventSlot(week, "Vrijdag", TimeSlot{
		Start: "14:00", End: "17:00", Label: "EVENT: LAN Party", Type: SlotTeam,
	})
	require.True(t, changed)

	starts := []string{}
	for _, s := range week[0].Slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"10:00", "14:00", "18:00"}, starts)
	assert.Equal(t, "EVENT: LAN Party", week[0].Slots[1].Label)
}

func TestAddEventSlotUnknownDay(t *testing.T) {
	week := []DaySchedule{{Day: "Maandag"}}
	_, changed := addEventSlot(week, "Zaterdag", TimeSlot{Start: "10:00", End: "12:00"})
	assert.False(t, changed)
}

func TestRemoveEventSlotMatchesExactly(t *testing.T) {
	week := []DaySchedule{
		{Day: "Vrijdag", Slots: []TimeSlot{
			{Start: "10:00", End: "12:00", Label: "Vrij spelen", Type: SlotOpen},
			{Start: "14:00", End: "17:00", Label: "EVENT: LAN Party", Type: SlotTeam},
		}},
	}

	week, changed := removeEventSlot(week, "Vrijdag", TimeSlot{
		Start: "14:00", End: "17:00", Label: "EVENT: LAN Party",
	})
	require.True(t, changed)
	require.Len(t, week[0].Slots, 1)
	assert.Equal(t, "Vrij spelen", week[0].Slots[0].Label)

	// removing again is a no-op
	_, changed = removeEventSlot(week, "Vrijdag", TimeSlot{
		Start: "14:00", End: "17:00", Label: "EVENT: LAN Party",
	})
	assert.False(t, changed)
}

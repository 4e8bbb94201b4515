package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthdayCalendar(t *testing.T) {
	stamp := time.Date(2025, time.December, 30, 9, 0, 0, 0, time.UTC)
	events := []BirthdayEvent{
		{UserID: "u1", Summary: "Anna's birthday", Date: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{UserID: "u2", Summary: "Boris's birthday", Date: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	raw, err := BirthdayCalendar("Birthdays", events, stamp)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(raw)).Decode()
	require.NoError(t, err)

	got := cal.Events()
	require.Len(t, got, 2)

	summary, err := got[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Anna's birthday", summary)

	uid, err := got[1].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "u2-2026@corp-social", uid)

	assert.Contains(t, string(raw), "DTSTART;VALUE=DATE:20260101")
	assert.Contains(t, string(raw), "\r\nX-WR-CALNAME:Birthdays\r\n")
	calName, err := cal.Props.Text("X-WR-CALNAME")
	require.NoError(t, err)
	assert.Equal(t, "Birthdays", calName)
}

func TestBirthdayCalendarEmpty(t *testing.T) {
	raw, err := BirthdayCalendar("Birthdays", nil, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "BEGIN:VCALENDAR"))
	assert.NotContains(t, string(raw), "VEVENT")
}

func TestAddressBook(t *testing.T) {
	photo := "https://cdn.test/users/photos/a.jpg"
	bday := time.Date(1990, time.March, 7, 0, 0, 0, 0, time.UTC)
	contacts := []Contact{
		{
			ID: "11111111-1111-1111-1111-111111111111", FirstName: "Anna", MiddleName: "S.", LastName: "Petrova",
			Email: "anna@corp.test", JobTitle: "Engineer", Department: "R&D", CorporatePhone: "+79990001122",
			Photo: &photo, Birthday: &bday,
		},
		{ID: "22222222-2222-2222-2222-222222222222", Email: "nobody@corp.test"},
	}

	raw, err := AddressBook(contacts)
	require.NoError(t, err)

	dec := vcard.NewDecoder(bytes.NewReader(raw))
	first, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "Anna S. Petrova", first.Value(vcard.FieldFormattedName))
	assert.Equal(t, "Petrova", first.Name().FamilyName)
	assert.Equal(t, "anna@corp.test", first.Value(vcard.FieldEmail))
	assert.Equal(t, "--0307", first.Value(vcard.FieldBirthday))
	assert.Equal(t, "Engineer", first.Value(vcard.FieldTitle))
	assert.Equal(t, "urn:uuid:11111111-1111-1111-1111-111111111111", first.Value(vcard.FieldUID))

	second, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "nobody@corp.test", second.Value(vcard.FieldFormattedName))
	assert.Empty(t, second.Value(vcard.FieldBirthday))
}

func TestAddressBookNonUUIDSubject(t *testing.T) {
	raw, err := AddressBook([]Contact{{ID: "auth0|5f7c8ec7c33c6c004bbafe82", Email: "anna@corp.test"}})
	require.NoError(t, err)

	card, err := vcard.NewDecoder(bytes.NewReader(raw)).Decode()
	require.NoError(t, err)
	assert.Equal(t, "auth0|5f7c8ec7c33c6c004bbafe82", card.Value(vcard.FieldUID))
	assert.NotContains(t, string(raw), "urn:uuid:auth0")
}

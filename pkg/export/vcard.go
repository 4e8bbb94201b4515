package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
)

// Contact is the address-book view of a user.
type Contact struct {
	ID             string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	JobTitle       string
	Department     string
	CorporatePhone string
	Photo          *string
	Birthday       *time.Time
}

// FormattedName joins the non-empty name parts.
func (c Contact) FormattedName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return c.Email
	}
	return strings.Join(parts, " ")
}

// contactUID returns a urn:uuid URI for UUID ids and the raw id otherwise.
func contactUID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.URN()
	}
	return id
}

// AddressBook encodes contacts as a stream of vCard 4.0 cards.
func AddressBook(contacts []Contact) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for _, c := range contacts {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldUID, contactUID(c.ID))
		card.SetValue(vcard.FieldFormattedName, c.FormattedName())
		card.SetName(&vcard.Name{
			FamilyName:     c.LastName,
			GivenName:      c.FirstName,
			AdditionalName: c.MiddleName,
		})
		if c.Email != "" {
			card.Add(vcard.FieldEmail, &vcard.Field{
				Value:  c.Email,
				Params: vcard.Params{vcard.ParamType: {vcard.TypeWork}},
			})
		}
		if c.CorporatePhone != "" {
			card.Add(vcard.FieldTelephone, &vcard.Field{
				Value:  c.CorporatePhone,
				Params: vcard.Params{vcard.ParamType: {vcard.TypeWork, vcard.TypeVoice}},
			})
		}
		if c.JobTitle != "" {
			card.SetValue(vcard.FieldTitle, c.JobTitle)
		}
		if c.Department != "" {
			card.SetValue(vcard.FieldOrganization, c.Department)
		}
		if c.Photo != nil && *c.Photo != "" {
			card.SetValue(vcard.FieldPhoto, *c.Photo)
		}
		if c.Birthday != nil {
			// Year is not shared: vCard 4.0 truncated date "--MMDD".
			card.SetValue(vcard.FieldBirthday, c.Birthday.Format("--0102"))
		}

		vcard.ToV4(card)
		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("export: encode card %s: %w", c.ID, err)
		}
	}
	return buf.Bytes(), nil
}

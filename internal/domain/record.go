package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BirthdayLayout is the date format birthdays are entered and shown in.
const BirthdayLayout = "02.01.2006"

// ValidatePhone checks that a phone number is exactly 10 digits
func ValidatePhone(phone string) error {
	if len(phone) != 10 {
		return errors.New("phone must contain exactly 10 digits")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return errors.New("phone must contain exactly 10 digits")
		}
	}
	return nil
}

// ValidateEmail checks the e-mail format. Blank is allowed since the
// field is optional.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRe.MatchString(email) {
		return errors.New("invalid e-mail format")
	}
	return nil
}

// ParseBirthday parses a DD.MM.YYYY date and rejects future dates
func ParseBirthday(value string) (time.Time, error) {
	dt, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return time.Time{}, errors.New("date must be DD.MM.YYYY")
	}
	if dt.After(time.Now()) {
		return time.Time{}, errors.New("birthday cannot be in the future")
	}
	return dt, nil
}

// NewContactRecord validates fields and builds a record. Surname, email
// and address may be blank.
func NewContactRecord(name, surname, email, address string) (*ContactRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return &ContactRecord{
		Name:    name,
		Surname: strings.TrimSpace(surname),
		Email:   email,
		Address: strings.TrimSpace(address),
	}, nil
}

// AddPhone validates and appends a phone number
func (r *ContactRecord) AddPhone(phone string) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	r.Phones = append(r.Phones, phone)
	return nil
}

// RemovePhone deletes a phone number, reporting whether it was present
func (r *ContactRecord) RemovePhone(phone string) bool {
	kept := r.Phones[:0]
	found := false
	for _, p := range r.Phones {
		if p == phone {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	r.Phones = kept
	return found
}

// SetBirthday parses and sets the birthday; it may only be set once
func (r *ContactRecord) SetBirthday(value string) error {
	if r.Birthday != nil {
		return errors.New("birthday already set")
	}
	dt, err := ParseBirthday(value)
	if err != nil {
		return err
	}
	r.Birthday = &dt
	return nil
}

// AddNote appends a free-text note to the contact
func (r *ContactRecord) AddNote(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return errors.New("note cannot be empty")
	}
	r.Notes = append(r.Notes, note)
	return nil
}

// SetEmail validates and replaces the e-mail
func (r *ContactRecord) SetEmail(email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	r.Email = email
	return nil
}

// SetAddress replaces the address
func (r *ContactRecord) SetAddress(address string) {
	r.Address = strings.TrimSpace(address)
}

// SearchFields returns the individual fields literal search matches
// against: name, surname, full name, phones, e-mail and contact notes.
func (r *ContactRecord) SearchFields() []string {
	fields := []string{r.Name, r.Surname, r.FullName()}
	fields = append(fields, r.Phones...)
	if r.Email != "" {
		fields = append(fields, r.Email)
	}
	fields = append(fields, r.Notes...)
	return fields
}

// SearchText returns the combined text semantic search embeds.
func (r *ContactRecord) SearchText() string {
	parts := []string{r.FullName()}
	parts = append(parts, r.Phones...)
	if r.Email != "" {
		parts = append(parts, r.Email)
	}
	if r.Address != "" {
		parts = append(parts, r.Address)
	}
	parts = append(parts, r.Notes...)
	return strings.Join(parts, " ")
}

// SearchFields returns the fields literal note search matches against.
func (n *NoteRecord) SearchFields() []string {
	return append([]string{n.Text}, n.Tags...)
}

// SearchText returns the combined text semantic note search embeds.
func (n *NoteRecord) SearchText() string {
	if len(n.Tags) == 0 {
		return n.Text
	}
	return fmt.Sprintf("%s [tags: %s]", n.Text, strings.Join(n.Tags, ", "))
}

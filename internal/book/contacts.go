package book

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/okravets/sytobook/internal/domain"
)

var (
	// ErrNotFound means no contact matched the given name.
	ErrNotFound = errors.New("contact not found")
	// ErrAmbiguous means several contacts matched and the caller must
	// disambiguate.
	ErrAmbiguous = errors.New("multiple contacts match")
)

// AddressBook holds the contact collection in memory, keeping insertion
// order so listings and search tie-breaks are reproducible across runs.
type AddressBook struct {
	records map[string]*domain.ContactRecord
	order   []string
}

// NewAddressBook builds a book from a loaded collection; both arguments
// may be nil for an empty book.
func NewAddressBook(records map[string]*domain.ContactRecord, order []string) *AddressBook {
	if records == nil {
		records = make(map[string]*domain.ContactRecord)
	}
	return &AddressBook{records: records, order: order}
}

// Len returns the number of contacts
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Add inserts a record, or replaces the record under the same key
func (b *AddressBook) Add(rec *domain.ContactRecord) {
	key := rec.Key()
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = rec
}

// Get returns the record stored under the exact key
func (b *AddressBook) Get(key string) (*domain.ContactRecord, bool) {
	rec, ok := b.records[key]
	return rec, ok
}

// Records returns all contacts in insertion order
func (b *AddressBook) Records() []*domain.ContactRecord {
	out := make([]*domain.ContactRecord, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Raw exposes the underlying collection and order for persistence.
func (b *AddressBook) Raw() (map[string]*domain.ContactRecord, []string) {
	return b.records, b.order
}

// Match returns the keys whose stored key contains every
// whitespace-separated part of the input, case-insensitively.
// "John" matches "john smith"; "jo sm" matches too.
func (b *AddressBook) Match(input string) []string {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return nil
	}

	var keys []string
	for _, key := range b.order {
		all := true
		for _, part := range parts {
			if !strings.Contains(key, part) {
				all = false
				break
			}
		}
		if all {
			keys = append(keys, key)
		}
	}
	return keys
}

// Find resolves input to a single contact, failing with ErrAmbiguous
// when several match. Interactive callers use Match directly and let
// the user pick.
func (b *AddressBook) Find(input string) (*domain.ContactRecord, error) {
	keys := b.Match(input)
	switch len(keys) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return b.records[keys[0]], nil
	default:
		return nil, ErrAmbiguous
	}
}

// Delete removes the contact stored under the key
func (b *AddressBook) Delete(key string) bool {
	if _, ok := b.records[key]; !ok {
		return false
	}
	delete(b.records, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// UpcomingBirthday pairs a contact with its next birthday date and the
// age the contact turns on it.
type UpcomingBirthday struct {
	Record *domain.ContactRecord
	Date   time.Time
	Age    int
}

// Upcoming returns contacts whose birthday falls within the next
// daysAhead days, soonest first.
func (b *AddressBook) Upcoming(daysAhead int) []UpcomingBirthday {
	return b.UpcomingFrom(time.Now(), daysAhead)
}

// UpcomingFrom is Upcoming with an explicit reference date. Feb 29
// birthdays are observed on Feb 28 in non-leap years.
func (b *AddressBook) UpcomingFrom(today time.Time, daysAhead int) []UpcomingBirthday {
	today = truncateDay(today)

	var out []UpcomingBirthday
	for _, key := range b.order {
		rec := b.records[key]
		if rec.Birthday == nil {
			continue
		}

		next := nextBirthday(*rec.Birthday, today)
		delta := int(next.Sub(today).Hours() / 24)
		if delta < 0 || delta > daysAhead {
			continue
		}
		out = append(out, UpcomingBirthday{
			Record: rec,
			Date:   next,
			Age:    next.Year() - rec.Birthday.Year(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func nextBirthday(birthday, today time.Time) time.Time {
	next := observedBirthday(today.Year(), birthday)
	if next.Before(today) {
		next = observedBirthday(today.Year()+1, birthday)
	}
	return next
}

func observedBirthday(year int, birthday time.Time) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

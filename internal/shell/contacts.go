package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okravets/sytobook/internal/domain"
	"github.com/okravets/sytobook/internal/rank"
)

func (s *Shell) handleContact(ctx context.Context, cmd domain.Command, args []string) {
	switch cmd {
	case domain.CmdAdd:
		s.addContact(args)
	case domain.CmdChange:
		s.changeContact(args)
	case domain.CmdRemovePhone:
		s.removePhone(args)
	case domain.CmdPhone:
		s.showPhones(args)
	case domain.CmdDelete:
		s.deleteContact(args)
	case domain.CmdAll:
		s.printRecords(s.contacts.Records())
	case domain.CmdSearch:
		s.searchContacts(ctx, args)
	case domain.CmdAddBirthday:
		s.addBirthday(args)
	case domain.CmdShowBirthday:
		s.showBirthday(args)
	case domain.CmdBirthdays:
		s.upcomingBirthdays(args)
	case domain.CmdAddContactNote:
		s.addContactNote(args)
	case domain.CmdChangeAddress:
		s.changeAddress(args)
	case domain.CmdChangeEmail:
		s.changeEmail(args)
	default:
		dimc.Fprintln(s.out, "Unknown contact command.")
	}
}

func (s *Shell) addContact(args []string) {
	var name, surname, phone, email, address string
	if len(args) == 0 {
		name = s.promptValidated("Enter name: ", nil, false)
		surname = s.promptValidated("Enter surname: ", nil, true)
		phone = s.promptValidated("Enter phone (10 digits): ", domain.ValidatePhone, true)
		email = s.promptValidated("Enter email: ", domain.ValidateEmail, true)
		address = s.promptValidated("Enter address: ", nil, true)
	} else {
		name = args[0]
		rest := args[1:]
		if len(rest) > 0 {
			surname = rest[0]
		}
		if len(rest) > 1 {
			phone = rest[1]
		}
		if len(rest) > 2 {
			email = rest[2]
		}
		if len(rest) > 3 {
			address = strings.Join(rest[3:], " ")
		}
	}

	key := domain.MakeKey(name, surname)
	if rec, ok := s.contacts.Get(key); ok {
		if phone != "" {
			if err := rec.AddPhone(phone); err != nil {
				errc.Fprintln(s.out, err)
				return
			}
		}
		if email != "" {
			if err := rec.SetEmail(email); err != nil {
				errc.Fprintln(s.out, err)
				return
			}
		}
		if address != "" {
			rec.SetAddress(address)
		}
		okc.Fprintln(s.out, "Contact updated.")
		return
	}

	rec, err := domain.NewContactRecord(name, surname, email, address)
	if err != nil {
		errc.Fprintln(s.out, err)
		return
	}
	if phone != "" {
		if err := rec.AddPhone(phone); err != nil {
			errc.Fprintln(s.out, err)
			return
		}
	}
	s.contacts.Add(rec)
	okc.Fprintln(s.out, "Contact added.")
}

func (s *Shell) changeContact(args []string) {
	name := s.argRest(args, 0, "Which contact do you want to change? >>> ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}

	field, _ := s.read("What do you want to change? (phone / email / address) >>> ")
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "phone":
		phone := s.promptValidated("Enter new phone >>> ", domain.ValidatePhone, false)
		rec.Phones = nil
		if err := rec.AddPhone(phone); err != nil {
			errc.Fprintln(s.out, err)
			return
		}
		okc.Fprintf(s.out, "Phone updated for %s\n", titleCase(rec.FullName()))
	case "email":
		email := s.promptValidated("Enter new email >>> ", domain.ValidateEmail, false)
		if err := rec.SetEmail(email); err != nil {
			errc.Fprintln(s.out, err)
			return
		}
		okc.Fprintf(s.out, "Email updated for %s\n", titleCase(rec.FullName()))
	case "address":
		address, _ := s.read("Enter new address >>> ")
		rec.SetAddress(address)
		okc.Fprintf(s.out, "Address updated for %s\n", titleCase(rec.FullName()))
	default:
		dimc.Fprintln(s.out, "Choose from: phone / email / address")
	}
}

func (s *Shell) removePhone(args []string) {
	name := s.arg(args, 0, "Contact name: ")
	phone := s.arg(args, 1, "Phone: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	if !rec.RemovePhone(phone) {
		errc.Fprintln(s.out, "Phone not found.")
		return
	}
	okc.Fprintln(s.out, "Phone removed.")
}

func (s *Shell) showPhones(args []string) {
	name := s.argRest(args, 0, "Contact name: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	fmt.Fprintln(s.out, joinOr(rec.Phones, ", "))
}

func (s *Shell) deleteContact(args []string) {
	name := s.argRest(args, 0, "Contact name: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	s.contacts.Delete(rec.Key())
	okc.Fprintln(s.out, "Contact deleted.")
}

func (s *Shell) searchContacts(ctx context.Context, args []string) {
	if s.contacts.Len() == 0 {
		dimc.Fprintln(s.out, "No contacts to search.")
		return
	}
	query := s.argRest(args, 0, "Enter name | surname | phone | notes: ")
	if query == "" {
		return
	}

	docs := make([]rank.Document, 0, s.contacts.Len())
	for _, rec := range s.contacts.Records() {
		docs = append(docs, rank.Document{
			Key:    rec.Key(),
			Text:   rec.SearchText(),
			Fields: rec.SearchFields(),
		})
	}

	rctx, cancel := s.backendCtx(ctx)
	cands := rank.Rank(rctx, query, docs, s.embedder)
	cancel()
	s.reportFallback(cands)
	if len(cands) == 0 {
		dimc.Fprintln(s.out, "No contacts found.")
		return
	}

	var hits []*domain.ContactRecord
	for _, c := range cands {
		if rec, ok := s.contacts.Get(c.Key); ok {
			hits = append(hits, rec)
		}
	}
	s.printRecords(hits)
}

func (s *Shell) addBirthday(args []string) {
	name := s.arg(args, 0, "Contact name: ")
	date := s.arg(args, 1, "Birthday DD.MM.YYYY: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	if err := rec.SetBirthday(date); err != nil {
		errc.Fprintln(s.out, err)
		return
	}
	okc.Fprintln(s.out, "Birthday added.")
}

func (s *Shell) showBirthday(args []string) {
	key := s.arg(args, 0, "Name or surname: ")

	var found bool
	for _, rec := range s.contacts.Records() {
		if !strings.EqualFold(key, rec.Name) && !strings.EqualFold(key, rec.Surname) {
			continue
		}
		found = true
		bday := "—"
		if rec.Birthday != nil {
			bday = rec.Birthday.Format(domain.BirthdayLayout)
		}
		fmt.Fprintf(s.out, "%s: %s\n", titleCase(rec.FullName()), bday)
	}
	if !found {
		errc.Fprintln(s.out, "Contact not found.")
	}
}

func (s *Shell) upcomingBirthdays(args []string) {
	raw := s.arg(args, 0, "Days from today (N): ")
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		errc.Fprintln(s.out, "Enter a positive integer for the number of days.")
		return
	}

	upcoming := s.contacts.Upcoming(days)
	if len(upcoming) == 0 {
		dimc.Fprintln(s.out, "No birthdays in this period.")
		return
	}
	for _, u := range upcoming {
		s.printRecord(u.Record, fmt.Sprintf("birthday %s, turns %d", u.Date.Format(domain.BirthdayLayout), u.Age))
	}
}

func (s *Shell) addContactNote(args []string) {
	name := s.arg(args, 0, "Contact name: ")
	note := s.argRest(args, 1, "Note: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	if err := rec.AddNote(note); err != nil {
		errc.Fprintln(s.out, err)
		return
	}
	okc.Fprintln(s.out, "Note added.")
}

func (s *Shell) changeAddress(args []string) {
	name := s.arg(args, 0, "Contact name: ")
	address := s.argRest(args, 1, "New address: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	rec.SetAddress(address)
	okc.Fprintln(s.out, "Address updated.")
}

func (s *Shell) changeEmail(args []string) {
	name := s.arg(args, 0, "Contact name: ")
	email := s.arg(args, 1, "New email: ")
	rec := s.findContact(name)
	if rec == nil {
		return
	}
	if err := rec.SetEmail(email); err != nil {
		errc.Fprintln(s.out, err)
		return
	}
	okc.Fprintln(s.out, "Email updated.")
}

// findContact resolves a typed name to one contact, letting the user
// pick when several match.
func (s *Shell) findContact(input string) *domain.ContactRecord {
	keys := s.contacts.Match(input)
	switch len(keys) {
	case 0:
		errc.Fprintln(s.out, "Contact not found.")
		return nil
	case 1:
		rec, _ := s.contacts.Get(keys[0])
		return rec
	}

	warnc.Fprintln(s.out, "Multiple matches found:")
	for i, key := range keys {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, titleCase(key))
	}
	ans, _ := s.read("Select number >>> ")
	idx, err := strconv.Atoi(strings.TrimSpace(ans))
	if err != nil || idx < 1 || idx > len(keys) {
		errc.Fprintln(s.out, "Invalid selection.")
		return nil
	}
	rec, _ := s.contacts.Get(keys[idx-1])
	return rec
}

func (s *Shell) printRecords(recs []*domain.ContactRecord) {
	if len(recs) == 0 {
		dimc.Fprintln(s.out, "No contacts.")
		return
	}
	for _, rec := range recs {
		s.printRecord(rec, "")
	}
}

func (s *Shell) printRecord(rec *domain.ContactRecord, extra string) {
	h1c.Fprintf(s.out, "\n%s\n", strings.ToUpper(rec.FullName()))
	fmt.Fprintf(s.out, "  phone:    %s\n", joinOr(rec.Phones, ", "))
	fmt.Fprintf(s.out, "  email:    %s\n", dash(rec.Email))
	fmt.Fprintf(s.out, "  address:  %s\n", dash(rec.Address))
	bday := "—"
	if rec.Birthday != nil {
		bday = rec.Birthday.Format(domain.BirthdayLayout)
	}
	fmt.Fprintf(s.out, "  birthday: %s\n", bday)
	fmt.Fprintf(s.out, "  notes:    %s\n", joinOr(rec.Notes, " | "))
	if extra != "" {
		fmt.Fprintf(s.out, "  %s\n", extra)
	}
}

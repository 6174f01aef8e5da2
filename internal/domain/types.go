package domain

import (
	"strings"
	"time"
)

// Mode selects which command set the shell accepts.
type Mode string

const (
	ModeContacts Mode = "contacts"
	ModeNotes    Mode = "notes"
)

// Command is one of the fixed operation names understood by the shell.
type Command string

// Contact mode commands.
const (
	CmdAdd            Command = "add"
	CmdChange         Command = "change"
	CmdRemovePhone    Command = "remove-phone"
	CmdPhone          Command = "phone"
	CmdDelete         Command = "delete"
	CmdAll            Command = "all"
	CmdSearch         Command = "search"
	CmdAddBirthday    Command = "add-birthday"
	CmdShowBirthday   Command = "show-birthday"
	CmdBirthdays      Command = "birthdays"
	CmdAddContactNote Command = "add-contact-note"
	CmdChangeAddress  Command = "change-address"
	CmdChangeEmail    Command = "change-email"
)

// Note mode commands.
const (
	CmdAddNote    Command = "add-note"
	CmdListNotes  Command = "list-notes"
	CmdAddTag     Command = "add-tag"
	CmdSearchTag  Command = "search-tag"
	CmdSearchNote Command = "search-note"
	CmdGroupNotes Command = "group-notes"
)

// Commands valid in every mode.
const (
	CmdHello Command = "hello"
	CmdHelp  Command = "help"
	CmdBack  Command = "back"
	CmdExit  Command = "exit"
	CmdClose Command = "close"
)

// ContactCommands returns the commands valid in contact mode.
func ContactCommands() []Command {
	return []Command{
		CmdAdd, CmdChange, CmdRemovePhone, CmdPhone, CmdDelete, CmdAll,
		CmdSearch, CmdAddBirthday, CmdShowBirthday, CmdBirthdays,
		CmdAddContactNote, CmdChangeAddress, CmdChangeEmail,
		CmdHello, CmdHelp, CmdBack, CmdExit, CmdClose,
	}
}

// NoteCommands returns the commands valid in note mode.
func NoteCommands() []Command {
	return []Command{
		CmdAddNote, CmdListNotes, CmdAddTag, CmdSearchTag, CmdSearchNote,
		CmdGroupNotes, CmdHello, CmdHelp, CmdBack, CmdExit, CmdClose,
	}
}

// ContactRecord holds one address book entry
type ContactRecord struct {
	Name     string     `json:"name"`
	Surname  string     `json:"surname,omitempty"`
	Phones   []string   `json:"phones,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Address  string     `json:"address,omitempty"`
	Email    string     `json:"email,omitempty"`
	Notes    []string   `json:"notes,omitempty"`
}

// Key returns the record's storage key
func (r *ContactRecord) Key() string {
	return MakeKey(r.Name, r.Surname)
}

// FullName returns the display name with original casing
func (r *ContactRecord) FullName() string {
	return strings.TrimSpace(r.Name + " " + r.Surname)
}

// MakeKey builds the lowercase storage key from name and surname
func MakeKey(name, surname string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSpace(name) + " " + strings.TrimSpace(surname)))
}

// KeyFromInput builds a key from user input like "John Smith"
func KeyFromInput(fullname string) string {
	parts := strings.SplitN(strings.TrimSpace(fullname), " ", 2)
	if len(parts) == 2 {
		return MakeKey(parts[0], parts[1])
	}
	return MakeKey(parts[0], "")
}

// NoteRecord holds one free-form note with optional tags
type NoteRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasTag reports whether the note carries the tag, case-insensitively
func (n *NoteRecord) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTags appends tags the note does not already carry. Tags are stored
// as entered; duplicate detection is case-insensitive.
func (n *NoteRecord) AddTags(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || n.HasTag(tag) {
			continue
		}
		n.Tags = append(n.Tags, tag)
	}
}

// Strategy names how a match candidate was scored.
type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategySubstring Strategy = "substring"
	StrategySemantic  Strategy = "semantic"
)

// MatchCandidate is a transient ranked reference to a record. Scores are
// in [0,1]; candidates are produced per query and never persisted.
type MatchCandidate struct {
	Key      string
	Score    float64
	Strategy Strategy
}

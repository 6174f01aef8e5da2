package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/okravets/sytobook/internal/domain"
)

//go:embed schema.sql
var schema string

// Store persists the two record collections. The on-disk layout is
// owned entirely by this package; callers only see whole collections
// round-tripped through Load/Save.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at the given path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadContacts returns all contact records in insertion order along
// with the key map.
func (s *Store) LoadContacts() (map[string]*domain.ContactRecord, []string, error) {
	rows, err := s.db.Query(
		"SELECT key, name, surname, phones, birthday, address, email, notes FROM contacts ORDER BY position",
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load contacts: %w", err)
	}
	defer rows.Close()

	records := make(map[string]*domain.ContactRecord)
	var order []string
	for rows.Next() {
		var (
			key, phonesJSON, notesJSON string
			rec                        domain.ContactRecord
			birthday                   sql.NullTime
		)
		if err := rows.Scan(&key, &rec.Name, &rec.Surname, &phonesJSON, &birthday, &rec.Address, &rec.Email, &notesJSON); err != nil {
			return nil, nil, fmt.Errorf("scan contact: %w", err)
		}
		if err := json.Unmarshal([]byte(phonesJSON), &rec.Phones); err != nil {
			return nil, nil, fmt.Errorf("decode phones for %s: %w", key, err)
		}
		if err := json.Unmarshal([]byte(notesJSON), &rec.Notes); err != nil {
			return nil, nil, fmt.Errorf("decode notes for %s: %w", key, err)
		}
		if birthday.Valid {
			bd := birthday.Time
			rec.Birthday = &bd
		}
		records[key] = &rec
		order = append(order, key)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("load contacts: %w", err)
	}

	return records, order, nil
}

// SaveContacts replaces the stored contacts collection in one
// transaction, preserving the given key order.
func (s *Store) SaveContacts(records map[string]*domain.ContactRecord, order []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}

	for _, key := range order {
		rec, ok := records[key]
		if !ok {
			continue
		}
		phonesJSON, err := json.Marshal(rec.Phones)
		if err != nil {
			return fmt.Errorf("encode phones for %s: %w", key, err)
		}
		notesJSON, err := json.Marshal(rec.Notes)
		if err != nil {
			return fmt.Errorf("encode notes for %s: %w", key, err)
		}
		var birthday sql.NullTime
		if rec.Birthday != nil {
			birthday = sql.NullTime{Time: *rec.Birthday, Valid: true}
		}
		_, err = tx.Exec(
			"INSERT INTO contacts (key, name, surname, phones, birthday, address, email, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			key, rec.Name, rec.Surname, string(phonesJSON), birthday, rec.Address, rec.Email, string(notesJSON),
		)
		if err != nil {
			return fmt.Errorf("insert contact %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// LoadNotes returns all notes in insertion order
func (s *Store) LoadNotes() ([]*domain.NoteRecord, error) {
	rows, err := s.db.Query("SELECT id, text, tags, created_at FROM notes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.NoteRecord
	for rows.Next() {
		var (
			note     domain.NoteRecord
			tagsJSON string
		)
		if err := rows.Scan(&note.ID, &note.Text, &tagsJSON, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", note.ID, err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	return notes, nil
}

// SaveNotes replaces the stored notes collection in one transaction
func (s *Store) SaveNotes(notes []*domain.NoteRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}

	for _, note := range notes {
		tagsJSON, err := json.Marshal(note.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for %s: %w", note.ID, err)
		}
		_, err = tx.Exec(
			"INSERT INTO notes (id, text, tags, created_at) VALUES (?, ?, ?, ?)",
			note.ID, note.Text, string(tagsJSON), note.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert note %s: %w", note.ID, err)
		}
	}

	return tx.Commit()
}

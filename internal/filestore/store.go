// Package filestore keeps a per-user contact list in a plain CSV file on
// disk instead of the database. Every operation reads the whole file and
// rewrites it; the files are small enough that nothing smarter is needed.
package filestore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Contact is one line of the file: name,email,phone.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Store manages the contact files under a single directory.
type Store struct {
	dir string
}

// New creates the store directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("filestore dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create filestore dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(userID uint) string {
	return filepath.Join(s.dir, fmt.Sprintf("contacts_%d.csv", userID))
}

// List returns all contacts for the user. A missing file is an empty list,
// not an error.
func (s *Store) List(userID uint) ([]Contact, error) {
	f, err := os.Open(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []Contact{}, nil
		}
		return nil, fmt.Errorf("open contacts file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read contacts file: %w", err)
	}

	contacts := make([]Contact, 0, len(records))
	for _, rec := range records {
		contacts = append(contacts, Contact{Name: rec[0], Email: rec[1], Phone: rec[2]})
	}
	return contacts, nil
}

// Add appends a contact and rewrites the file.
func (s *Store) Add(userID uint, ct Contact) error {
	if ct.Name == "" {
		return fmt.Errorf("contact name is empty")
	}
	contacts, err := s.List(userID)
	if err != nil {
		return err
	}
	contacts = append(contacts, ct)
	return s.write(userID, contacts)
}

// Delete removes the contact at the given zero-based position and rewrites
// the file.
func (s *Store) Delete(userID uint, index int) error {
	contacts, err := s.List(userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(contacts) {
		return fmt.Errorf("contact index %d out of range", index)
	}
	contacts = append(contacts[:index], contacts[index+1:]...)
	return s.write(userID, contacts)
}

// write replaces the user's file via a temp file and rename, so a failed
// write never truncates the existing list.
func (s *Store) write(userID uint, contacts []Contact) error {
	target := s.path(userID)
	tmp, err := os.CreateTemp(s.dir, "contacts_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	for _, ct := range contacts {
		if err := w.Write([]string{ct.Name, ct.Email, ct.Phone}); err != nil {
			tmp.Close()
			return fmt.Errorf("write contact: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush contacts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace contacts file: %w", err)
	}
	return nil
}

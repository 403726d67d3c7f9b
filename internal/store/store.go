package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// isoFormat is the fixed-width timestamp format used in the persisted
// document: second precision, no timezone.
const isoFormat = "2006-01-02T15:04:05"

// DefaultPath is the store file used when none is configured.
const DefaultPath = "attendance_data.json"

// Event is a single attendance event for a profile. Events are immutable;
// identity within a profile is exact timestamp equality, Source excluded.
type Event struct {
	Timestamp time.Time
	Source    string
}

// Profile holds the attendance history for one person. Profiles are keyed
// by lower-cased email; the Email field keeps the original casing. Events
// are kept ascending by timestamp.
type Profile struct {
	Name   string
	Email  string
	Events []Event
}

// registerEvent appends an event and restores ascending timestamp order.
func (p *Profile) registerEvent(evt Event) {
	p.Events = append(p.Events, evt)
	sort.SliceStable(p.Events, func(i, j int) bool {
		return p.Events[i].Timestamp.Before(p.Events[j].Timestamp)
	})
}

// hasEvent reports whether the profile already has an event at ts.
func (p *Profile) hasEvent(ts time.Time) bool {
	for _, evt := range p.Events {
		if evt.Timestamp.Equal(ts) {
			return true
		}
	}
	return false
}

// EventDocument is the persisted form of an Event. Source is omitted
// entirely when blank.
type EventDocument struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source,omitempty"`
}

// ProfileDocument is the persisted form of a Profile.
type ProfileDocument struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Events []EventDocument `json:"events"`
}

// rawProfile mirrors ProfileDocument with pointer fields so missing keys
// can be told apart from empty values during validation.
type rawProfile struct {
	Name   *string    `json:"name"`
	Email  *string    `json:"email"`
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	Timestamp *string `json:"timestamp"`
	Source    string  `json:"source"`
}

// Store is the authoritative in-memory mapping of lower-cased email to
// profile, backed by a single JSON document on disk. Load and save are
// whole-document operations; there is no incremental persistence and no
// cross-process locking. A Store is not safe for concurrent use.
type Store struct {
	path     string
	profiles map[string]*Profile
}

// Open creates a store backed by the given file. A missing file is not an
// error; the store starts empty. A malformed file is a fatal load error.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{path: path, profiles: map[string]*Profile{}}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("stat store %s: %w", path, err)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the backing file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load replaces the in-memory mapping with the contents of the backing
// file. The document is validated strictly: every profile needs name and
// email, every key must equal the lower-cased email of its value, and
// every timestamp must parse. Any violation fails the whole load.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read store %s: %w", s.path, err)
	}

	doc := map[string]rawProfile{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("malformed store %s: %w", s.path, err)
	}

	profiles := make(map[string]*Profile, len(doc))
	for key, raw := range doc {
		if raw.Name == nil || raw.Email == nil {
			return fmt.Errorf("malformed store %s: profile %q is missing name or email", s.path, key)
		}
		if key != strings.ToLower(*raw.Email) {
			return fmt.Errorf("malformed store %s: key %q does not match email %q", s.path, key, *raw.Email)
		}
		profile := &Profile{Name: *raw.Name, Email: *raw.Email}
		for _, evt := range raw.Events {
			if evt.Timestamp == nil {
				return fmt.Errorf("malformed store %s: event for %q is missing a timestamp", s.path, key)
			}
			ts, err := time.Parse(isoFormat, *evt.Timestamp)
			if err != nil {
				return fmt.Errorf("malformed store %s: invalid timestamp %q for %q", s.path, *evt.Timestamp, key)
			}
			profile.registerEvent(Event{Timestamp: ts, Source: evt.Source})
		}
		profiles[key] = profile
	}
	s.profiles = profiles
	return nil
}

// Save serializes the whole mapping to the backing file as pretty JSON,
// overwriting any prior content.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

// Document returns the persisted-document shape of the current mapping.
func (s *Store) Document() map[string]ProfileDocument {
	doc := make(map[string]ProfileDocument, len(s.profiles))
	for key, profile := range s.profiles {
		events := make([]EventDocument, 0, len(profile.Events))
		for _, evt := range profile.Events {
			events = append(events, EventDocument{
				Timestamp: evt.Timestamp.Format(isoFormat),
				Source:    evt.Source,
			})
		}
		doc[key] = ProfileDocument{Name: profile.Name, Email: profile.Email, Events: events}
	}
	return doc
}

// GetOrCreate resolves the profile for an email, creating it on first
// sight. An existing profile keeps its name unless the stored name is
// blank, or the new name is non-blank and differs case-insensitively; a
// new name never blanks out an existing one.
func (s *Store) GetOrCreate(name, email string) *Profile {
	key := strings.ToLower(email)
	profile, ok := s.profiles[key]
	if !ok {
		profile = &Profile{Name: name, Email: email}
		s.profiles[key] = profile
		return profile
	}
	if profile.Name != name {
		stored := strings.TrimSpace(profile.Name)
		incoming := strings.TrimSpace(name)
		if stored != "" {
			if incoming != "" && !strings.EqualFold(stored, incoming) {
				profile.Name = name
			}
		} else {
			profile.Name = name
		}
	}
	return profile
}

// RecordAttendance registers an event for the given person unless the
// profile already has an event with an equal timestamp. It reports
// whether a new event was added, making repeated imports of the same
// export idempotent.
func (s *Store) RecordAttendance(name, email string, ts time.Time, source string) bool {
	profile := s.GetOrCreate(name, email)
	if profile.hasEvent(ts) {
		return false
	}
	profile.registerEvent(Event{Timestamp: ts, Source: source})
	return true
}

// Lookup returns the profile for an email, matched case-insensitively.
func (s *Store) Lookup(email string) (*Profile, bool) {
	profile, ok := s.profiles[strings.ToLower(email)]
	return profile, ok
}

// Profiles returns a snapshot of all profiles. Iteration order is not
// meaningful; sorting is a presentation concern.
func (s *Store) Profiles() []*Profile {
	profiles := make([]*Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	return profiles
}

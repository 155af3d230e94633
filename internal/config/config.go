// Package config loads and saves the persisted system document: user
// credentials and remembered wireless networks, one JSON file at a fixed
// device path. Passwords are stored and compared in cleartext; the document
// format is shared with existing devices and must not be upgraded to hashing
// without breaking them.
package config

import (
	"encoding/json"

	"cardsh/internal/vfs"
)

// Path is where the document lives on the device filesystem.
const Path = "/config.json"

// Built-in defaults applied when the document is absent or a section is
// missing.
const (
	DefaultRootPassword  = "pbash"
	DefaultGuestPassword = ""
)

// Document is the persisted state. Unknown top-level fields from a newer
// firmware's document ride along in extra untouched, so an older shell never
// strips what it does not understand.
type Document struct {
	Users map[string]string
	WiFi  map[string]string

	extra map[string]json.RawMessage
}

// Defaults returns the compiled-in document.
func Defaults() *Document {
	return &Document{
		Users: map[string]string{"root": DefaultRootPassword, "guest": DefaultGuestPassword},
		WiFi:  map[string]string{},
	}
}

// Load reads the document at path, merging with defaults: a missing file, a
// malformed file, or a missing section each fall back to the compiled-in
// values, and the root and guest entries are backfilled if absent. Load never
// fails.
func Load(fs vfs.FS, path string) *Document {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Defaults()
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Defaults()
	}
	doc := &Document{extra: map[string]json.RawMessage{}}
	for key, val := range raw {
		switch key {
		case "users":
			if json.Unmarshal(val, &doc.Users) != nil {
				doc.Users = nil
			}
		case "wifi":
			if json.Unmarshal(val, &doc.WiFi) != nil {
				doc.WiFi = nil
			}
		default:
			doc.extra[key] = val
		}
	}
	if doc.Users == nil {
		doc.Users = map[string]string{}
	}
	if doc.WiFi == nil {
		doc.WiFi = map[string]string{}
	}
	if _, ok := doc.Users["root"]; !ok {
		doc.Users["root"] = DefaultRootPassword
	}
	if _, ok := doc.Users["guest"]; !ok {
		doc.Users["guest"] = DefaultGuestPassword
	}
	return doc
}

// Save writes the full document back. It reports success as a boolean: a
// read-only medium makes the write fail silently at the storage layer, and
// callers surface that to the user instead of crashing.
func (d *Document) Save(fs vfs.FS, path string) bool {
	out := map[string]json.RawMessage{}
	for k, v := range d.extra {
		out[k] = v
	}
	users, err := json.Marshal(d.Users)
	if err != nil {
		return false
	}
	wifi, err := json.Marshal(d.WiFi)
	if err != nil {
		return false
	}
	out["users"] = users
	out["wifi"] = wifi
	data, err := json.Marshal(out)
	if err != nil {
		return false
	}
	return fs.WriteFile(path, data) == nil
}

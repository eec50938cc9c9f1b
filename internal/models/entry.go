// Package models defines the catalog entry shared by the server and the client.
package models

import "strings"

// Class is the containment class of an entry.
type Class string

const (
	ClassSafe   Class = "Safe"
	ClassEuclid Class = "Euclid"
	ClassKeter  Class = "Keter"
)

// DefaultItemPrefix is prepended to item numbers by the create flow.
const DefaultItemPrefix = "SCP-"

var classRanks = map[Class]int{
	ClassSafe:   3,
	ClassEuclid: 2,
	ClassKeter:  1,
}

// Classes returns the known classes in display order.
func Classes() []Class {
	return []Class{ClassSafe, ClassEuclid, ClassKeter}
}

// ClassRank returns the sort rank of a class. Unknown classes rank 0.
func ClassRank(c Class) int {
	return classRanks[c]
}

// IsKnownClass reports whether c belongs to the fixed enumeration.
func IsKnownClass(c Class) bool {
	_, ok := classRanks[c]
	return ok
}

// ParseClass matches s against the known classes ignoring case.
func ParseClass(s string) (Class, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Classes() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return Class(s), false
}

// Entry is a catalog record.
//
// Image holds a signed, expiring URL. ImageKey is the object name the URL was
// minted for, so the server can re-sign it on read.
type Entry struct {
	ID          string `json:"id,omitempty"`
	Item        string `json:"item"`
	Class       Class  `json:"class"`
	Description string `json:"description"`
	Containment string `json:"containment"`
	Image       string `json:"image,omitempty"`
	ImageKey    string `json:"image_key,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from the text fields.
func (e Entry) Trimmed() Entry {
	e.Item = strings.TrimSpace(e.Item)
	e.Class = Class(strings.TrimSpace(string(e.Class)))
	e.Description = strings.TrimSpace(e.Description)
	e.Containment = strings.TrimSpace(e.Containment)
	return e
}

// MissingFields lists the required text fields that are empty after trimming.
func (e Entry) MissingFields() []string {
	t := e.Trimmed()
	var missing []string
	if t.Item == "" {
		missing = append(missing, "item")
	}
	if t.Class == "" {
		missing = append(missing, "class")
	}
	if t.Description == "" {
		missing = append(missing, "description")
	}
	if t.Containment == "" {
		missing = append(missing, "containment")
	}
	return missing
}

// Package api is a read-only client for the Rick and Morty character API.
package api

import (
	"strconv"
	"strings"
	"time"
)

// Place is a named location reference (origin or last known location).
type Place struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Character is a single catalog entry.
type Character struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Status   string   `json:"status" yaml:"status"`
	Species  string   `json:"species" yaml:"species"`
	Type     string   `json:"type" yaml:"type"`
	Gender   string   `json:"gender" yaml:"gender"`
	Origin   Place    `json:"origin" yaml:"origin"`
	Location Place    `json:"location" yaml:"location"`
	Image    string   `json:"image" yaml:"image"`
	Episode  []string `json:"episode" yaml:"episode"`
	URL      string   `json:"url" yaml:"url"`
	Created  string   `json:"created" yaml:"created"`
}

// CreatedAt parses the creation timestamp. The API sends RFC 3339 with
// milliseconds; a plain date is accepted too.
func (c Character) CreatedAt() (time.Time, bool) {
	if c.Created == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, c.Created); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EpisodeIDs returns the numeric ids at the end of each episode URL.
// Entries that do not end in a number are skipped.
func (c Character) EpisodeIDs() []int {
	ids := make([]int, 0, len(c.Episode))
	for _, ep := range c.Episode {
		tail := ep[strings.LastIndex(ep, "/")+1:]
		if id, err := strconv.Atoi(tail); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// PageInfo is the pagination envelope of a list response.
// Next and Prev are empty when the API sends null.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// CharacterPage is one fetched batch of characters.
type CharacterPage struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// HasMore reports whether the API advertised a next page.
func (p *CharacterPage) HasMore() bool {
	return p != nil && p.Info.Next != ""
}

// Field names a filterable attribute.
type Field string

const (
	FieldName    Field = "name"
	FieldSpecies Field = "species"
	FieldGender  Field = "gender"
	FieldStatus  Field = "status"
	FieldType    Field = "type"
)

// Fields lists every filterable attribute in query order.
var Fields = []Field{FieldName, FieldSpecies, FieldGender, FieldStatus, FieldType}

// Filters narrows a list request. An empty field means no constraint.
type Filters struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Species string `json:"species,omitempty" yaml:"species,omitempty"`
	Gender  string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Get returns the value of one field.
func (f Filters) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldSpecies:
		return f.Species
	case FieldGender:
		return f.Gender
	case FieldStatus:
		return f.Status
	case FieldType:
		return f.Type
	}
	return ""
}

// With returns a copy of f with one field replaced. Unknown fields leave
// the copy unchanged.
func (f Filters) With(field Field, value string) Filters {
	switch field {
	case FieldName:
		f.Name = value
	case FieldSpecies:
		f.Species = value
	case FieldGender:
		f.Gender = value
	case FieldStatus:
		f.Status = value
	case FieldType:
		f.Type = value
	}
	return f
}

// IsZero reports whether no constraint is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

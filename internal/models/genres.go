package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Genres is a list of music genres. It is stored as a JSON array inside a single text column.
type Genres []string

// Value implements driver.Valuer. Characters like "&" are stored as they are
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(g)); err != nil {
		return nil, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Scan implements sql.Scanner
func (g *Genres) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("Genres.Scan: unsupported source type %T", src)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*g = Genres{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("Genres.Scan: %v", err)
	}
	*g = Genres(list)
	return nil
}

// Contains checks if the given genre is part of the list
func (g Genres) Contains(genre string) bool {
	for _, item := range g {
		if item == genre {
			return true
		}
	}
	return false
}

// String returns the genres as a comma-separated list
func (g Genres) String() string {
	return strings.Join(g, ", ")
}

// cleanGenres trims every entry and drops empty ones and duplicates while keeping the order
func cleanGenres(g Genres) Genres {
	ret := Genres{}
	for _, item := range g {
		item = strings.TrimSpace(item)
		if item != "" && !ret.Contains(item) {
			ret = append(ret, item)
		}
	}
	return ret
}

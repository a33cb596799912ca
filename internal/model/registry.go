package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnknownCountry buckets registry entries that carry no country value.
const UnknownCountry = "Unknown"

// Datacenter is a single registry record as stored on disk.
type Datacenter struct {
	Name    string `json:"name"`
	IP      string `json:"ip"`
	Country string `json:"country"`
}

// CountryOrUnknown returns the entry's country, normalizing an absent or
// empty value to UnknownCountry so no entry is ever dropped from listings.
func (d Datacenter) CountryOrUnknown() string {
	if strings.TrimSpace(d.Country) == "" {
		return UnknownCountry
	}
	return d.Country
}

// Entry is a datacenter record together with its opaque registry key.
type Entry struct {
	ID string
	Datacenter
}

// Registry is the parsed registry document. Entries keep the order in
// which records appear in the JSON document, which map decoding would
// lose; later filtering relies on that order.
type Registry struct {
	Entries []Entry
}

// UnmarshalJSON walks the token stream instead of decoding into a map so
// that document order is preserved. Top-level keys other than
// "datacenter" are skipped.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read registry document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("registry document is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read registry key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected registry token %v", keyTok)
		}

		if key != "datacenter" {
			var skipped json.RawMessage
			if err := dec.Decode(&skipped); err != nil {
				return fmt.Errorf("skip registry key %q: %w", key, err)
			}
			continue
		}

		if err := r.decodeDatacenters(dec); err != nil {
			return err
		}
	}

	return nil
}

func (r *Registry) decodeDatacenters(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read datacenter mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("datacenter mapping is not a JSON object")
	}

	for dec.More() {
		idTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read datacenter id: %w", err)
		}
		id, ok := idTok.(string)
		if !ok {
			return fmt.Errorf("unexpected datacenter token %v", idTok)
		}

		var record Datacenter
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("decode datacenter %q: %w", id, err)
		}

		r.Entries = append(r.Entries, Entry{ID: id, Datacenter: record})
	}

	// Closing brace of the datacenter mapping.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read datacenter mapping end: %w", err)
	}

	return nil
}

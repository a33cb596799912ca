package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"pingscope/internal/model"
)

var (
	// ErrNotFound means the registry file does not exist.
	ErrNotFound = errors.New("registry file not found")

	// ErrMalformed means the registry file exists but could not be
	// parsed as the expected document shape.
	ErrMalformed = errors.New("malformed registry data")
)

// FailureObserver is notified whenever a registry load fails and the
// failure is swallowed into an empty query result.
type FailureObserver interface {
	ObserveRegistryError()
}

// Loader reads the datacenter registry from disk. Every query re-reads
// the file; there is no cache, so edits to the backing file are picked up
// on the next call.
type Loader struct {
	logger   *log.Logger
	observer FailureObserver
}

// NewLoader returns a Loader reporting swallowed failures to logger and
// observer. Both may be nil; a nil logger means the default logger.
func NewLoader(logger *log.Logger, observer FailureObserver) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{logger: logger, observer: observer}
}

// Load parses the registry document at path. It returns ErrNotFound when
// the file is missing and ErrMalformed when the content cannot be parsed;
// on error the returned registry is empty, never partial.
func (l *Loader) Load(path string) (model.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Registry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return model.Registry{}, fmt.Errorf("read registry %s: %w", path, err)
	}

	var reg model.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return model.Registry{}, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	return reg, nil
}

// Countries returns the distinct countries present in the registry at
// path, sorted ascending. Entries without a country count under
// "Unknown". Countries that differ only in casing collapse into one
// entry, keeping the byte-wise smallest casing so the result is
// deterministic regardless of document order.
//
// A load failure is logged and yields an empty slice so directory
// listings stay navigable with a missing or corrupt file.
func (l *Loader) Countries(path string) []string {
	reg, err := l.Load(path)
	if err != nil {
		l.reportFailure(path, err)
		return nil
	}

	byFold := make(map[string]string)
	for _, entry := range reg.Entries {
		country := entry.CountryOrUnknown()
		fold := strings.ToLower(country)
		if seen, ok := byFold[fold]; !ok || country < seen {
			byFold[fold] = country
		}
	}

	countries := make([]string, 0, len(byFold))
	for _, country := range byFold {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	return countries
}

// Servers returns one Server per registry entry whose country matches the
// query, compared case-insensitively against the whole field. Results
// keep registry document order. Load failures degrade to an empty slice,
// same as Countries.
func (l *Loader) Servers(path, country string) []model.Server {
	reg, err := l.Load(path)
	if err != nil {
		l.reportFailure(path, err)
		return nil
	}

	var servers []model.Server
	for _, entry := range reg.Entries {
		if !strings.EqualFold(entry.CountryOrUnknown(), country) {
			continue
		}
		servers = append(servers, model.Server{
			Name:    entry.Name,
			Address: entry.IP,
		})
	}

	return servers
}

func (l *Loader) reportFailure(path string, err error) {
	l.logger.Printf("registry %s unavailable: %v", path, err)
	if l.observer != nil {
		l.observer.ObserveRegistryError()
	}
}

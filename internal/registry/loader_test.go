package registry

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"pingscope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	failures int
}

func (o *countingObserver) ObserveRegistryError() {
	o.failures++
}

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datacenters.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader(observer FailureObserver) (*Loader, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLoader(log.New(&buf, "", 0), observer), &buf
}

func TestLoad(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		_, err := loader.Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Malformed", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, `{"datacenter": [`)
		_, err := loader.Load(path)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("Valid", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, `{"datacenter":{"a":{"name":"A1","ip":"1.2.3.4","country":"Germany"}}}`)

		reg, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, reg.Entries, 1)
		assert.Equal(t, "A1", reg.Entries[0].Name)
	})
}

func TestCountries(t *testing.T) {
	t.Run("SortedAndDistinct", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, `{"datacenter":{
			"a":{"name":"A1","ip":"1.1.1.1","country":"Turkey"},
			"b":{"name":"B1","ip":"2.2.2.2","country":"France"},
			"c":{"name":"C1","ip":"3.3.3.3","country":"France"},
			"d":{"name":"D1","ip":"4.4.4.4","country":"Germany"}
		}}`)

		assert.Equal(t, []string{"France", "Germany", "Turkey"}, loader.Countries(path))
	})

	t.Run("MissingCountriesCollapseIntoUnknown", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, `{"datacenter":{
			"a":{"name":"A1","ip":"1.1.1.1"},
			"b":{"name":"B1","ip":"2.2.2.2","country":""},
			"c":{"name":"C1","ip":"3.3.3.3","country":"France"}
		}}`)

		assert.Equal(t, []string{"France", "Unknown"}, loader.Countries(path))
	})

	t.Run("CasingVariantsCollapse", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, `{"datacenter":{
			"a":{"name":"A1","ip":"1.2.3.4","country":"germany"},
			"b":{"name":"B1","ip":"5.6.7.8","country":"Germany"}
		}}`)

		// The byte-wise smallest casing wins regardless of document order.
		assert.Equal(t, []string{"Germany"}, loader.Countries(path))
	})

	t.Run("LoadFailureYieldsEmpty", func(t *testing.T) {
		observer := &countingObserver{}
		loader, buf := newTestLoader(observer)

		countries := loader.Countries(filepath.Join(t.TempDir(), "missing.json"))

		assert.Empty(t, countries)
		assert.Contains(t, buf.String(), "unavailable")
		assert.Equal(t, 1, observer.failures)
	})
}

func TestServers(t *testing.T) {
	const doc = `{"datacenter":{
		"a":{"name":"A1","ip":"1.2.3.4","country":"Germany"},
		"b":{"name":"B1","ip":"5.6.7.8","country":"germany"},
		"c":{"name":"C1","ip":"9.9.9.9","country":"United States"},
		"d":{"name":"D1","ip":"8.8.8.8"}
	}}`

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, doc)

		lower := loader.Servers(path, "germany")
		upper := loader.Servers(path, "GERMANY")

		require.Len(t, lower, 2)
		assert.Equal(t, lower, upper)
		assert.Equal(t, model.Server{Name: "A1", Address: "1.2.3.4"}, lower[0])
		assert.Equal(t, model.Server{Name: "B1", Address: "5.6.7.8"}, lower[1])
	})

	t.Run("WholeFieldMatchOnly", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, doc)

		assert.Empty(t, loader.Servers(path, "United"))
		assert.Len(t, loader.Servers(path, "United States"), 1)
	})

	t.Run("MissingCountryMatchesUnknown", func(t *testing.T) {
		loader, _ := newTestLoader(nil)
		path := writeRegistry(t, doc)

		servers := loader.Servers(path, "unknown")
		require.Len(t, servers, 1)
		assert.Equal(t, "D1", servers[0].Name)
	})

	t.Run("UnmatchedCountryYieldsEmpty", func(t *testing.T) {
		loader, buf := newTestLoader(nil)
		path := writeRegistry(t, doc)

		assert.Empty(t, loader.Servers(path, "Atlantis"))
		assert.Empty(t, buf.String())
	})

	t.Run("LoadFailureYieldsEmpty", func(t *testing.T) {
		observer := &countingObserver{}
		loader, buf := newTestLoader(observer)

		servers := loader.Servers(filepath.Join(t.TempDir(), "missing.json"), "Germany")

		assert.Empty(t, servers)
		assert.Contains(t, buf.String(), "unavailable")
		assert.Equal(t, 1, observer.failures)
	})
}

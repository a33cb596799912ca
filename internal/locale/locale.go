// Package locale loads YAML translation catalogs and renders labels for
// output. Lookups never fail: an unknown key comes back verbatim, so
// callers can use translations for display without depending on them.
package locale

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fallbackCode = "en"

// Locale is a loaded translation catalog.
type Locale struct {
	dir          string
	code         string
	translations map[string]string
}

// Detect picks a locale code from the LC_ALL/LANG environment variables.
// A Turkish tag selects "tr"; anything else defaults to English.
func Detect() string {
	lang := strings.ToLower(os.Getenv("LANG"))
	lcAll := strings.ToLower(os.Getenv("LC_ALL"))

	if strings.Contains(lang, "tr") || strings.Contains(lcAll, "tr") {
		return "tr"
	}
	return fallbackCode
}

// Load reads the catalog for the detected locale from dir, falling back
// to English and then to an empty catalog. It never fails.
func Load(dir string) *Locale {
	return LoadCode(dir, Detect())
}

// LoadCode reads the catalog for a specific locale code.
func LoadCode(dir, code string) *Locale {
	l := &Locale{dir: dir, code: code}

	translations, err := readCatalog(dir, code)
	if err != nil && code != fallbackCode {
		l.code = fallbackCode
		translations, err = readCatalog(dir, fallbackCode)
	}
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("load locale catalog %s: %v", code, err)
		}
		translations = map[string]string{}
	}

	l.translations = translations
	return l
}

func readCatalog(dir, code string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, code+".yml"))
	if err != nil {
		return nil, err
	}

	translations := map[string]string{}
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, err
	}
	return translations, nil
}

// Code is the locale code actually in use after fallback.
func (l *Locale) Code() string {
	return l.code
}

// Get returns the translation for key with {name} placeholders replaced
// from vars. A missing key yields the key itself.
func (l *Locale) Get(key string, vars map[string]string) string {
	text, ok := l.translations[key]
	if !ok {
		return key
	}

	for name, value := range vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// Available lists the catalog codes present in the locale directory with
// a display name per code.
func (l *Locale) Available() map[string]string {
	available := map[string]string{}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return available
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".yml") {
			continue
		}

		code := strings.TrimSuffix(name, ".yml")
		if code == "" {
			continue
		}
		switch code {
		case "en":
			available[code] = "English"
		case "tr":
			available[code] = "Türkçe"
		default:
			available[code] = strings.ToUpper(code[:1]) + code[1:]
		}
	}

	return available
}

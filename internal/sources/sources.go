// Package sources maps provider source identifiers to display names.
package sources

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Mapping is a bijective id ↔ display-name table for the configured
// source set. Identifiers the table does not know fall back to whatever
// name the provider supplied.
type Mapping struct {
	order     []string
	display   map[string]string
	idByName  map[string]string
	neutralID map[string]bool
}

type mappingConfig struct {
	Sources []struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		Neutral bool   `yaml:"neutral,omitempty"`
	} `yaml:"sources"`
}

// New builds a mapping and enforces the bijection invariant.
func New(entries []Entry) (*Mapping, error) {
	m := &Mapping{
		display:   make(map[string]string, len(entries)),
		idByName:  make(map[string]string, len(entries)),
		neutralID: make(map[string]bool),
	}
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("source entry needs both id and name: %+v", e)
		}
		if _, dup := m.display[e.ID]; dup {
			return nil, fmt.Errorf("duplicate source id %q", e.ID)
		}
		if _, dup := m.idByName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate source name %q", e.Name)
		}
		m.order = append(m.order, e.ID)
		m.display[e.ID] = e.Name
		m.idByName[e.Name] = e.ID
		if e.Neutral {
			m.neutralID[e.ID] = true
		}
	}
	return m, nil
}

type Entry struct {
	ID      string
	Name    string
	Neutral bool
}

// Load reads the source table from a YAML file.
func Load(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg mappingConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing sources config %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		entries = append(entries, Entry{ID: s.ID, Name: s.Name, Neutral: s.Neutral})
	}
	return New(entries)
}

// DisplayName resolves an id to its display name. Unknown ids fall back
// to the provider-supplied name.
func (m *Mapping) DisplayName(id, providerName string) string {
	if name, ok := m.display[id]; ok {
		return name
	}
	if providerName != "" {
		return providerName
	}
	return "Unknown"
}

// ID resolves a display name back to the provider identifier.
func (m *Mapping) ID(name string) (string, bool) {
	id, ok := m.idByName[name]
	return id, ok
}

// IDs returns all configured source identifiers in declared order.
func (m *Mapping) IDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// DefaultSelection returns the source ids enabled on first run. The
// long-tail tech outlets stay opt-in.
func (m *Mapping) DefaultSelection() []string {
	excluded := map[string]bool{"wired": true, "hacker-news": true, "ars-technica": true}
	var out []string
	for _, id := range m.order {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out
}

// NeutralIDs returns the sources marked neutral, sorted for stable output.
func (m *Mapping) NeutralIDs() []string {
	var out []string
	for id := range m.neutralID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Default returns the compiled-in source table.
func Default() *Mapping {
	m, err := New(defaultEntries)
	if err != nil {
		panic(err) // compiled-in table is always valid
	}
	return m
}

var defaultEntries = []Entry{
	{ID: "reuters", Name: "Reuters", Neutral: true},
	{ID: "associated-press", Name: "Associated Press", Neutral: true},
	{ID: "bloomberg", Name: "Bloomberg", Neutral: true},
	{ID: "axios", Name: "Axios", Neutral: true},
	{ID: "politico", Name: "Politico", Neutral: true},
	{ID: "the-verge", Name: "The Verge"},
	{ID: "bbc-news", Name: "BBC News"},
	{ID: "al-jazeera-english", Name: "Al Jazeera"},
	{ID: "the-wall-street-journal", Name: "WSJ"},
	{ID: "cnbc", Name: "CNBC"},
	{ID: "business-insider", Name: "Business Insider"},
	{ID: "financial-post", Name: "Financial Post"},
	{ID: "techcrunch", Name: "TechCrunch"},
	{ID: "wired", Name: "Wired"},
	{ID: "ars-technica", Name: "Ars Technica"},
	{ID: "hacker-news", Name: "Hacker News"},
}

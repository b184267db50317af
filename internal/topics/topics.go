// Package topics holds the keyword index: the named categories used both
// to build provider queries and to classify returned articles.
package topics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind separates curated topics from user-created ones.
type Kind int

const (
	// BuiltIn topics carry a curated keyword expansion.
	BuiltIn Kind = iota
	// Custom topics match on their own name only.
	Custom
)

// Topic is a named category plus the keywords that define it.
// Keyword lists are never empty.
type Topic struct {
	Name     string
	Kind     Kind
	Keywords []string
}

// NewBuiltIn builds a curated topic. The keyword list must be non-empty.
func NewBuiltIn(name string, keywords []string) (Topic, error) {
	if strings.TrimSpace(name) == "" {
		return Topic{}, fmt.Errorf("topic name is required")
	}
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return Topic{}, fmt.Errorf("topic %q has no keywords", name)
	}
	return Topic{Name: name, Kind: BuiltIn, Keywords: cleaned}, nil
}

// NewCustom builds a user topic. The name is normalized to title case and
// doubles as the sole keyword.
func NewCustom(name string) (Topic, error) {
	name = titleCase(strings.TrimSpace(name))
	if name == "" {
		return Topic{}, fmt.Errorf("topic name is required")
	}
	return Topic{Name: name, Kind: Custom, Keywords: []string{name}}, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Index is the ordered set of built-in topics.
type Index struct {
	order  []Topic
	byName map[string]Topic
}

func NewIndex(builtIns []Topic) *Index {
	idx := &Index{byName: make(map[string]Topic, len(builtIns))}
	for _, t := range builtIns {
		if _, dup := idx.byName[t.Name]; dup {
			continue
		}
		idx.order = append(idx.order, t)
		idx.byName[t.Name] = t
	}
	return idx
}

// Lookup returns the built-in topic with the given name.
func (idx *Index) Lookup(name string) (Topic, bool) {
	t, ok := idx.byName[name]
	return t, ok
}

// Names returns the built-in topic names in declared order.
func (idx *Index) Names() []string {
	names := make([]string, len(idx.order))
	for i, t := range idx.order {
		names[i] = t.Name
	}
	return names
}

// Resolve turns a requested topic name into a topic: a built-in when the
// index knows it, a custom topic otherwise.
func (idx *Index) Resolve(name string) (Topic, error) {
	if t, ok := idx.byName[name]; ok {
		return t, nil
	}
	return NewCustom(name)
}

// Selection resolves a list of names into unique topics, preserving order.
// Duplicate names (after custom-name normalization) are rejected.
func (idx *Index) Selection(names []string) ([]Topic, error) {
	seen := make(map[string]bool, len(names))
	selection := make([]Topic, 0, len(names))
	for _, name := range names {
		t, err := idx.Resolve(name)
		if err != nil {
			return nil, err
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate topic %q in selection", t.Name)
		}
		seen[t.Name] = true
		selection = append(selection, t)
	}
	return selection, nil
}

// indexConfig is the YAML shape of configs/topics.yaml:
//
//	topics:
//	  - name: Tech
//	    keywords: ["tech", "technology"]
type indexConfig struct {
	Topics []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"topics"`
}

// LoadIndex reads the built-in topic table from a YAML file. Keyword
// lists are tunable configuration, not code.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg indexConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing topics config %s: %w", path, err)
	}

	builtIns := make([]Topic, 0, len(cfg.Topics))
	for _, raw := range cfg.Topics {
		t, err := NewBuiltIn(raw.Name, raw.Keywords)
		if err != nil {
			return nil, err
		}
		builtIns = append(builtIns, t)
	}
	if len(builtIns) == 0 {
		return nil, fmt.Errorf("topics config %s defines no topics", path)
	}
	return NewIndex(builtIns), nil
}

// DefaultIndex returns the compiled-in topic table, used when no YAML
// override is configured.
func DefaultIndex() *Index {
	builtIns := make([]Topic, 0, len(defaultTopics))
	for _, d := range defaultTopics {
		t, err := NewBuiltIn(d.name, d.keywords)
		if err != nil {
			panic(err) // compiled-in table is always valid
		}
		builtIns = append(builtIns, t)
	}
	return NewIndex(builtIns)
}

var defaultTopics = []struct {
	name     string
	keywords []string
}{
	{"Tech", []string{
		"tech", "technology", "software", "hardware", "startup",
		"silicon valley", "app", "semiconductor", "cybersecurity", "cloud computing",
	}},
	{"AI", []string{
		"ai", "artificial intelligence", "machine learning", "llm",
		"openai", "chatgpt", "deep learning", "neural network",
		"anthropic", "gemini", "large language model", "generative ai",
	}},
	{"Stocks", []string{
		"stocks", "stock market", "equities", "s&p", "nasdaq",
		"dow jones", "shares", "earnings", "ipo", "wall street",
		"federal reserve", "interest rates", "hedge fund", "market rally",
	}},
	{"Politics", []string{
		"politics", "election", "congress", "senate",
		"house of representatives", "white house", "legislation",
		"biden", "trump", "democrat", "republican", "gop",
		"governor", "ballot", "campaign", "executive order",
	}},
	{"Epstein", []string{
		"epstein", "jeffrey epstein", "ghislaine maxwell",
		"epstein files", "epstein list",
	}},
	{"Nuclear", []string{
		"nuclear", "uranium", "reactor", "warhead",
		"nonproliferation", "iaea", "fission", "nuclear weapon",
		"nuclear energy", "nuclear deal", "enrichment",
	}},
}

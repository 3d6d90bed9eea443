package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed moods.yaml
var defaultMoods []byte

// MoodPolicy is the listing query a mood translates to.
type MoodPolicy struct {
	MinScore float64  `yaml:"min_score"`
	Genres   []string `yaml:"genres"`
	OrderBy  string   `yaml:"order_by"`
	Sort     string   `yaml:"sort"`
}

// MoodTable maps mood keywords to policies.
type MoodTable struct {
	DefaultMood string                `yaml:"default_mood"`
	Moods       map[string]MoodPolicy `yaml:"moods"`
}

// DefaultMoodTable returns the table compiled into the binary.
func DefaultMoodTable() *MoodTable {
	table, err := ParseMoodTable(defaultMoods)
	if err != nil {
		panic(fmt.Sprintf("embedded mood table: %v", err))
	}
	return table
}

// LoadMoodTable reads a mood table from path. An empty path returns the
// embedded default.
// The path parameter is expected to come from a trusted source (environment or hardcoded default).
func LoadMoodTable(path string) (*MoodTable, error) {
	if path == "" {
		return DefaultMoodTable(), nil
	}

	// #nosec G304 -- path is provided by trusted source (env var), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mood table: %w", err)
	}
	return ParseMoodTable(data)
}

// ParseMoodTable decodes and validates a YAML mood table. Mood keys are
// normalised to lower case.
func ParseMoodTable(data []byte) (*MoodTable, error) {
	var raw MoodTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mood table: %w", err)
	}

	table := &MoodTable{
		DefaultMood: strings.ToLower(strings.TrimSpace(raw.DefaultMood)),
		Moods:       make(map[string]MoodPolicy, len(raw.Moods)),
	}
	for name, policy := range raw.Moods {
		table.Moods[strings.ToLower(strings.TrimSpace(name))] = policy
	}

	if err := validateMoodTable(table); err != nil {
		return nil, fmt.Errorf("mood table validation failed: %w", err)
	}
	return table, nil
}

func validateMoodTable(t *MoodTable) error {
	if len(t.Moods) == 0 {
		return fmt.Errorf("at least one mood is required")
	}
	if t.DefaultMood == "" {
		return fmt.Errorf("default_mood is required")
	}
	if _, ok := t.Moods[t.DefaultMood]; !ok {
		return fmt.Errorf("default_mood %q is not defined", t.DefaultMood)
	}

	for name, p := range t.Moods {
		if p.MinScore < 0 || p.MinScore > 10 {
			return fmt.Errorf("mood %q: min_score must be between 0 and 10", name)
		}
		if p.OrderBy == "" {
			return fmt.Errorf("mood %q: order_by is required", name)
		}
		if p.Sort != "asc" && p.Sort != "desc" {
			return fmt.Errorf("mood %q: sort must be asc or desc", name)
		}
	}
	return nil
}

// Lookup returns the policy for mood, falling back to the default mood for
// unknown or empty keywords. The returned name is the mood actually used.
func (t *MoodTable) Lookup(mood string) (string, MoodPolicy) {
	key := strings.ToLower(strings.TrimSpace(mood))
	if p, ok := t.Moods[key]; ok {
		return key, p
	}
	return t.DefaultMood, t.Moods[t.DefaultMood]
}

// Names returns the configured mood keywords in sorted order.
func (t *MoodTable) Names() []string {
	names := make([]string, 0, len(t.Moods))
	for name := range t.Moods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

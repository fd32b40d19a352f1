package anatomy

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/organs.yaml
var organsYAML []byte

//go:embed data/symptoms.yaml
var symptomsYAML []byte

// Organ describes one entry in the organ reference table.
type Organ struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	System      System   `yaml:"system"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Function    string   `yaml:"function"`
	Symptoms    []string `yaml:"symptoms"` // related symptom IDs
}

// Symptom describes one entry in the symptom reference table.
type Symptom struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Category       string   `yaml:"category"`
	Severity       string   `yaml:"severity"` // mild, moderate, severe
	Description    string   `yaml:"description"`
	AffectedOrgans []string `yaml:"affected_organs"` // organ display names
}

// Library is the loaded reference data: plain lookup tables, no derived state.
type Library struct {
	Organs   []Organ
	Symptoms []Symptom

	organsByID   map[string]*Organ
	symptomsByID map[string]*Symptom
}

// LoadLibrary parses the embedded reference tables.
func LoadLibrary() (*Library, error) {
	var organDoc struct {
		Organs []Organ `yaml:"organs"`
	}
	if err := yaml.Unmarshal(organsYAML, &organDoc); err != nil {
		return nil, fmt.Errorf("parsing organ table: %w", err)
	}

	var symptomDoc struct {
		Symptoms []Symptom `yaml:"symptoms"`
	}
	if err := yaml.Unmarshal(symptomsYAML, &symptomDoc); err != nil {
		return nil, fmt.Errorf("parsing symptom table: %w", err)
	}

	lib := &Library{
		Organs:       organDoc.Organs,
		Symptoms:     symptomDoc.Symptoms,
		organsByID:   make(map[string]*Organ, len(organDoc.Organs)),
		symptomsByID: make(map[string]*Symptom, len(symptomDoc.Symptoms)),
	}
	for i := range lib.Organs {
		lib.organsByID[lib.Organs[i].ID] = &lib.Organs[i]
	}
	for i := range lib.Symptoms {
		lib.symptomsByID[lib.Symptoms[i].ID] = &lib.Symptoms[i]
	}
	return lib, nil
}

// OrganByID returns the organ with the given ID, or nil.
func (l *Library) OrganByID(id string) *Organ {
	return l.organsByID[id]
}

// SymptomByID returns the symptom with the given ID, or nil.
func (l *Library) SymptomByID(id string) *Symptom {
	return l.symptomsByID[id]
}

// OrganByName finds an organ by display name. Matching is case-insensitive
// and tolerates substring matches in either direction, the same rule the
// scene uses for mesh names.
func (l *Library) OrganByName(name string) *Organ {
	if name == "" {
		return nil
	}
	needle := strings.ToLower(name)

	// Exact match wins over substring matches.
	for i := range l.Organs {
		if strings.ToLower(l.Organs[i].Name) == needle {
			return &l.Organs[i]
		}
	}
	for i := range l.Organs {
		haystack := strings.ToLower(l.Organs[i].Name)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return &l.Organs[i]
		}
	}
	return nil
}

// OrgansForSystem returns the organs belonging to one system. SystemAll
// returns every organ.
func (l *Library) OrgansForSystem(sys System) []Organ {
	if sys == SystemAll {
		return l.Organs
	}
	var out []Organ
	for _, o := range l.Organs {
		if o.System == sys {
			out = append(out, o)
		}
	}
	return out
}

// SearchOrgans returns organs whose name, location, or description contains
// the query, case-insensitively. An empty query returns nothing.
func (l *Library) SearchOrgans(query string) []Organ {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []Organ
	for _, o := range l.Organs {
		if strings.Contains(strings.ToLower(o.Name), query) ||
			strings.Contains(strings.ToLower(o.Location), query) ||
			strings.Contains(strings.ToLower(o.Description), query) {
			out = append(out, o)
		}
	}
	return out
}

// SymptomCategories returns the distinct symptom categories, sorted.
func (l *Library) SymptomCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range l.Symptoms {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out
}

// SymptomsForCategory returns the symptoms in one category.
func (l *Library) SymptomsForCategory(category string) []Symptom {
	var out []Symptom
	for _, s := range l.Symptoms {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// AffectedOrgans returns the union of affected-organ names across the given
// active symptom IDs, deduplicated and sorted. Unknown IDs are skipped.
func (l *Library) AffectedOrgans(activeSymptomIDs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range activeSymptomIDs {
		s := l.symptomsByID[id]
		if s == nil {
			continue
		}
		for _, organ := range s.AffectedOrgans {
			if !seen[organ] {
				seen[organ] = true
				out = append(out, organ)
			}
		}
	}
	sort.Strings(out)
	return out
}

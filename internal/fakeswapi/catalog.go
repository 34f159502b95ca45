// Package fakeswapi serves a small fixture copy of the catalog API for
// offline development and tests.
package fakeswapi

import (
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmcdole/holonet/internal/domain"
)

//go:embed fixtures/catalog.yaml
var defaultFixtures []byte

// Fixed timestamps; fixtures carry no history of their own.
const (
	fixtureCreated = "2014-12-09T13:50:51.644000Z"
	fixtureEdited  = "2014-12-20T21:17:56.891000Z"
)

var refValue = regexp.MustCompile(`^(films|people|planets|species|starships|vehicles)/(\d+)$`)

// record is one resource as read from the fixture file
type record map[string]any

func (r record) id() int {
	switch v := r["id"].(type) {
	case int:
		return v
	default:
		return 0
	}
}

// searchFields are the fields the upstream search parameter matches
var searchFields = map[domain.Kind][]string{
	domain.KindFilms:     {"title"},
	domain.KindPeople:    {"name"},
	domain.KindPlanets:   {"name"},
	domain.KindSpecies:   {"name"},
	domain.KindStarships: {"name", "model"},
	domain.KindVehicles:  {"name", "model"},
}

// Catalog is the fixture data, ordered by id within each kind.
type Catalog struct {
	records map[domain.Kind][]record
}

// DefaultCatalog parses the embedded fixtures.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultFixtures)
}

// LoadCatalog parses YAML fixtures keyed by kind.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[string][]record
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	c := &Catalog{records: make(map[domain.Kind][]record)}
	for name, recs := range raw {
		kind, err := domain.ParseKind(name)
		if err != nil {
			return nil, err
		}
		for i, rec := range recs {
			if rec.id() <= 0 {
				return nil, fmt.Errorf("%s[%d]: %w", kind, i, domain.ErrInvalidID)
			}
		}
		slices.SortFunc(recs, func(a, b record) int { return a.id() - b.id() })
		c.records[kind] = recs
	}
	return c, nil
}

// Count returns the number of fixtures of kind.
func (c *Catalog) Count(kind domain.Kind) int {
	return len(c.records[kind])
}

// Search returns the fixtures of kind matching term, in id order.
func (c *Catalog) Search(kind domain.Kind, term string) []record {
	recs := c.records[kind]
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return recs
	}

	var out []record
	for _, rec := range recs {
		for _, f := range searchFields[kind] {
			if s, ok := rec[f].(string); ok && strings.Contains(strings.ToLower(s), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Get returns one fixture.
func (c *Catalog) Get(kind domain.Kind, id int) (record, bool) {
	for _, rec := range c.records[kind] {
		if rec.id() == id {
			return rec, true
		}
	}
	return nil, false
}

// render turns a fixture into the upstream JSON shape, with references
// expanded against base (e.g. http://host/api/).
func render(kind domain.Kind, rec record, base string) map[string]any {
	out := make(map[string]any, len(rec)+3)
	for k, v := range rec {
		if k == "id" {
			continue
		}
		out[k] = expand(v, base)
	}
	out["url"] = fmt.Sprintf("%s%s/%d/", base, kind, rec.id())
	if _, ok := out["created"]; !ok {
		out["created"] = fixtureCreated
	}
	if _, ok := out["edited"]; !ok {
		out["edited"] = fixtureEdited
	}
	return out
}

func expand(v any, base string) any {
	switch val := v.(type) {
	case string:
		if refValue.MatchString(val) {
			return base + val + "/"
		}
		return val
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = expand(item, base)
		}
		return out
	default:
		return v
	}
}

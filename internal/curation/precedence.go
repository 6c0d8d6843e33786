package curation

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/domain"
)

// PrecedenceRules holds the curated source-precedence order per fact type
// and field. When sources disagree on a field, the first listed source that
// actually reported a value wins the auto-resolution; fields with no rule
// stay pending for a human.
type PrecedenceRules struct {
	rules map[domain.FactType]map[string][]domain.SourceID
}

// precedenceFile is the YAML shape of config/curated/precedence.yaml:
//
//	match:
//	  home_goals: [football-data, engsoccerdata]
//	attendance:
//	  attendance: [efl-tables, transfermarkt]
type precedenceFile map[string]map[string][]string

// LoadPrecedenceRules reads the precedence YAML file
func LoadPrecedenceRules(fs adapter.FileSystem, path string) (*PrecedenceRules, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read precedence rules: %w", err)
	}

	var file precedenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse precedence rules: %w", err)
	}

	rules := &PrecedenceRules{rules: make(map[domain.FactType]map[string][]domain.SourceID)}
	for factType, fields := range file {
		ft := domain.FactType(factType)
		if !domain.IsValidFactType(ft) {
			return nil, fmt.Errorf("precedence rules: unknown fact type %q", factType)
		}
		rules.rules[ft] = make(map[string][]domain.SourceID, len(fields))
		for field, sources := range fields {
			if len(sources) == 0 {
				return nil, fmt.Errorf("precedence rules: empty source list for %s.%s", factType, field)
			}
			order := make([]domain.SourceID, len(sources))
			for i, s := range sources {
				order[i] = domain.SourceID(s)
			}
			rules.rules[ft][field] = order
		}
	}

	return rules, nil
}

// Winner picks the highest-precedence source among those that reported a
// value for the field. The boolean is false when no rule exists for the
// (factType, field) pair or no listed source reported.
func (p *PrecedenceRules) Winner(factType domain.FactType, field string, reported []domain.SourceID) (domain.SourceID, bool) {
	order, ok := p.rules[factType][field]
	if !ok {
		return "", false
	}
	for _, preferred := range order {
		for _, src := range reported {
			if src == preferred {
				return preferred, true
			}
		}
	}
	return "", false
}

// HasRule reports whether a precedence order is curated for the field
func (p *PrecedenceRules) HasRule(factType domain.FactType, field string) bool {
	_, ok := p.rules[factType][field]
	return ok
}

// Package resolver maps historical club name strings to canonical club
// identities. It is a pure date-ranged lookup over the curated alias table:
// club identity over a century is governed by idiosyncratic rules (phoenix
// continuity, relocation splits, nickname drift) that belong in an explicit,
// auditable table. String-similarity matching is deliberately absent — a
// false merge is far costlier than an UnknownAlias failure, which fails
// loudly and demands a curation fix.
package resolver

import (
	"time"

	"github.com/pitchside/consolidator/internal/curation"
	"github.com/pitchside/consolidator/internal/domain"
)

// ClubResolver resolves reported club names to canonical club ids
type ClubResolver struct {
	aliases *curation.AliasTable
}

// New creates a resolver over a curated alias table
func New(aliases *curation.AliasTable) *ClubResolver {
	return &ClubResolver{aliases: aliases}
}

// Resolve returns the club id the name belonged to at the given date.
// Returns a domain.UnknownAliasError when no alias row covers (name, asOf).
func (r *ClubResolver) Resolve(name string, asOf time.Time) (domain.ClubID, error) {
	id, ok := r.aliases.Lookup(name, asOf)
	if !ok {
		return "", &domain.UnknownAliasError{Name: name, AsOf: asOf}
	}
	return id, nil
}

// ResolveAll resolves a sequence of names at a common date, preserving input
// order. It fails on the first unresolved name; the error carries the name
// and date so the curator can add the missing alias row.
func (r *ClubResolver) ResolveAll(names []string, asOf time.Time) ([]domain.ClubID, error) {
	ids := make([]domain.ClubID, 0, len(names))
	for _, name := range names {
		id, err := r.Resolve(name, asOf)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

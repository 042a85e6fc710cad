package models

import (
	"fmt"
	"strings"
)

// PlayerRef is a player named by a user, optionally qualified with a team
type PlayerRef struct {
	Name string
	Team string
}

func (r PlayerRef) String() string {
	if r.Team != "" {
		return fmt.Sprintf("%s (%s)", r.Name, r.Team)
	}
	return r.Name
}

// ParsePlayerRefs splits a comma-separated list of names, each optionally followed by "(Team)"
func ParsePlayerRefs(input string) []PlayerRef {
	var refs []PlayerRef
	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		ref := PlayerRef{Name: entry}
		if open := strings.LastIndex(entry, "("); open > 0 && strings.HasSuffix(entry, ")") {
			ref.Name = strings.TrimSpace(entry[:open])
			ref.Team = strings.TrimSpace(entry[open+1 : len(entry)-1])
		}
		refs = append(refs, ref)
	}
	return refs
}

// Resolve maps each reference onto exactly one row, exact names before partial ones.
// References that match nothing or more than one row are reported as problems.
func (pl PlayerList) Resolve(refs []PlayerRef) ([]PlayerKey, []string) {
	var keys []PlayerKey
	var problems []string

	for _, ref := range refs {
		candidates := pl.FindByExactName(ref.Name)
		if len(candidates) == 0 {
			candidates = pl.SearchByName(ref.Name)
		}
		if ref.Team != "" {
			candidates = candidates.Filter(StatusIs(ref.Team))
		}

		switch len(candidates) {
		case 0:
			problems = append(problems, fmt.Sprintf("%s: not found", ref))
		case 1:
			keys = append(keys, candidates[0].Key())
		default:
			var options []string
			for _, p := range candidates.Top(5) {
				options = append(options, fmt.Sprintf("%s (%s)", p.Player, p.Status))
			}
			problems = append(problems, fmt.Sprintf("%s: matches %d players: %s",
				ref, len(candidates), strings.Join(options, ", ")))
		}
	}
	return keys, problems
}

// SPDX-License-Identifier: MPL-2.0

package change

import (
	"fmt"
	"strings"

	"wadlump-cli/internal/issue"
)

// ExpandGroups substitutes every token naming a configured group with the
// group's members, recursively, until no group names remain. Group names
// match case-insensitively and only against bare tokens (a token carrying
// a directive operator is never a group reference). A group that
// references itself, directly or through other groups, is rejected.
func ExpandGroups(tokens []string, groups map[string][]string) ([]string, error) {
	if len(groups) == 0 {
		return tokens, nil
	}
	// Case-fold the group table once.
	folded := make(map[string][]string, len(groups))
	for name, members := range groups {
		folded[strings.ToLower(name)] = members
	}

	var out []string
	for _, tok := range tokens {
		expanded, err := expandToken(tok, folded, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// expandToken expands one token, tracking the chain of group names being
// expanded to detect cycles.
func expandToken(tok string, groups map[string][]string, path []string) ([]string, error) {
	if strings.Contains(tok, "=") || strings.HasPrefix(tok, "+") {
		return []string{tok}, nil
	}
	key := strings.ToLower(tok)
	members, ok := groups[key]
	if !ok {
		return []string{tok}, nil
	}
	for _, seen := range path {
		if seen == key {
			chain := strings.Join(append(path, key), " -> ")
			return nil, issue.NewErrorContext().
				WithOperation("expand change groups").
				WithResource(tok).
				WithIssue(issue.GroupCycleId).
				Wrap(fmt.Errorf("cyclic group reference: %s", chain)).
				BuildError()
		}
	}
	path = append(path, key)
	var out []string
	for _, member := range members {
		expanded, err := expandToken(member, groups, path)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

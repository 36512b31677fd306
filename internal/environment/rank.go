// SPDX-License-Identifier: MPL-2.0

package environment

type dedupeKey struct {
	category Category
	handle   Handle
}

// Dedupe drops later environments sharing a (category, handle) pair with an
// earlier one. Input order is otherwise preserved; Dedupe is idempotent.
func Dedupe(envs []Environment) []Environment {
	seen := make(map[dedupeKey]bool, len(envs))
	out := make([]Environment, 0, len(envs))
	for _, env := range envs {
		key := dedupeKey{category: env.Category, handle: env.Handle}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, env)
	}
	return out
}

// Recommend returns at most one usable environment per category, ordered by
// the fixed category priority. Categories without a usable representative
// are skipped.
func Recommend(envs []Environment) []Environment {
	out := make([]Environment, 0, len(categoryPriority))
	for _, category := range categoryPriority {
		for _, env := range envs {
			if env.Usable && env.Category == category {
				out = append(out, env)
				break
			}
		}
	}
	return out
}

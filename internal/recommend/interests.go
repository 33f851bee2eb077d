// Package recommend implements the group activity scoring math: deriving a
// group's common-interest set and scoring catalog activities against it.
// Functions here are pure; data fetching and persistence live in the service
// layer.
package recommend

import "sort"

// CommonInterests derives the shared interest set for a group from its
// members' individual tag sets.
//
// Rules:
//   - no members: empty set
//   - one member: that member's set
//   - two or more: intersection of all sets; if the intersection is empty,
//     fall back to the union so a group with any interests at all still gets
//     recommendations (precision traded for availability)
//
// Tags are deduplicated and the result is sorted for deterministic records.
func CommonInterests(memberInterests [][]string) []string {
	if len(memberInterests) == 0 {
		return nil
	}

	sets := make([]map[string]struct{}, len(memberInterests))
	for i, tags := range memberInterests {
		sets[i] = toSet(tags)
	}

	if len(sets) == 1 {
		return sortedKeys(sets[0])
	}

	intersection := make(map[string]struct{})
	for tag := range sets[0] {
		inAll := true
		for _, other := range sets[1:] {
			if _, ok := other[tag]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			intersection[tag] = struct{}{}
		}
	}
	if len(intersection) > 0 {
		return sortedKeys(intersection)
	}

	// No tag shared by everyone: fall back to the union.
	union := make(map[string]struct{})
	for _, set := range sets {
		for tag := range set {
			union[tag] = struct{}{}
		}
	}
	return sortedKeys(union)
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package fileutil

import "sort"

func DedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func MapKeysSorted(values map[string]bool) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func ToSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, path := range paths {
		set[path] = true
	}
	return set
}

// Without returns items minus every entry present in drop, preserving order.
func Without(items []string, drop []string) []string {
	skip := ToSet(drop)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if skip[item] {
			continue
		}
		out = append(out, item)
	}
	return out
}

package utils

import "strings"

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// ContainsFold reports whether substr occurs in s under case-insensitive
// comparison. The same folding (strings.ToLower) is used for both sides so
// every caller matches with identical semantics.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

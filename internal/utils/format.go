package utils

import "strconv"

// FormatWeight renders a weight without trailing float noise: 3.0 -> "3",
// 21.5 -> "21.5".
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

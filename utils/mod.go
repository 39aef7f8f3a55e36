package utils

// FindIndex returns the position of the first occurrence of item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// SumBy adds up f over every element of slice.
func SumBy[T any](slice []T, f func(T) int) int {
	total := 0
	for _, v := range slice {
		total += f(v)
	}
	return total
}

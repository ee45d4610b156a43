package utils

// ClampPercent limita um valor ao intervalo 0-100
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package scoring

// Band approximates an IELTS-style band from a raw objective score.
// Returns "" when total is zero (no scorable items).
func Band(correct, total int) string {
	if total <= 0 {
		return ""
	}

	ratio := float64(correct) / float64(total)
	switch {
	case ratio >= 0.975:
		return "9.0"
	case ratio >= 0.925:
		return "8.5"
	case ratio >= 0.875:
		return "8.0"
	case ratio >= 0.825:
		return "7.5"
	case ratio >= 0.75:
		return "7.0"
	case ratio >= 0.675:
		return "6.5"
	case ratio >= 0.60:
		return "6.0"
	case ratio >= 0.525:
		return "5.5"
	case ratio >= 0.45:
		return "5.0"
	case ratio >= 0.375:
		return "4.5"
	case ratio >= 0.30:
		return "4.0"
	default:
		return "3.5"
	}
}

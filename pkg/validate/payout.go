package validate

// IsPayoutNumber reports whether s looks like an e-wallet payout number:
// digits only, long enough to redact down to the last four.
func IsPayoutNumber(s string) bool {
	if len(s) < 5 || len(s) > 20 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

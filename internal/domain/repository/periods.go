package repository

// NormalizePeriod maps a user-facing period to the provider range token,
// falling back to one year for anything unrecognized.
func NormalizePeriod(period string) string {
	switch period {
	case "1mo", "3mo", "6mo", "1y", "2y", "5y", "max":
		return period
	case "":
		return "1y"
	default:
		return "1y"
	}
}

// NormalizeInterval maps a user-facing interval to the provider token.
func NormalizeInterval(interval string) string {
	switch interval {
	case "1d", "1wk", "1mo":
		return interval
	default:
		return "1d"
	}
}

// PeriodTradingDays gives a rough bar count for a daily-interval period,
// used for sizing rolling-window lookbacks.
func PeriodTradingDays(period string) int {
	switch NormalizePeriod(period) {
	case "1mo":
		return 21
	case "3mo":
		return 63
	case "6mo":
		return 126
	case "1y":
		return 252
	case "2y":
		return 504
	case "5y":
		return 1260
	default:
		return 2520
	}
}

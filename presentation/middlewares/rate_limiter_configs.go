package middlewares

import "time"

// StrictRateLimiterConfig suits writes that create rooms and bookings.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerWindow: 30,
		Window:            time.Minute,
		BlockDuration:     10 * time.Minute,
	}
}

func ModerateRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		BlockDuration:     5 * time.Minute,
	}
}

// LenientRateLimiterConfig for read-heavy endpoints
func LenientRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		BlockDuration:     time.Minute,
	}
}

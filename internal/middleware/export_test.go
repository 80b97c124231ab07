package middleware

var RateLimitWithClock = rateLimit

package auth

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles the login endpoint with a shared token bucket.
// Plaintext credential comparison makes brute forcing cheap, so the bucket
// is deliberately small.
func LoginLimiter(perSecond float64, burst int) fiber.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many login attempts")
		}
		return c.Next()
	}
}

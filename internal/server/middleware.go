package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DonationRateLimit throttles donation creation per client address. Limiter
// failures fail open so a redis outage does not block giving.
func (s *Server) DonationRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.limiter.AllowDonation(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("donation rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

func (s *Server) VerifyRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.limiter.AllowVerify(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("verify rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

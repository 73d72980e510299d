package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowedMethods = "GET, POST, OPTIONS"
	allowedHeaders = "Content-Type, X-Requested-With, X-Request-ID"
	// Content-Disposition carries the export filename to the browser client.
	exposedHeaders  = "Content-Disposition, X-Request-ID"
	preflightMaxAge = "600"
)

type originPolicy struct {
	any     bool
	allowed map[string]struct{}
}

func newOriginPolicy(origins []string) originPolicy {
	policy := originPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			policy.any = true
			continue
		}
		if origin != "" {
			policy.allowed[origin] = struct{}{}
		}
	}
	if len(policy.allowed) == 0 {
		policy.any = true
	}
	return policy
}

func (p originPolicy) permits(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.allowed[strings.TrimRight(origin, "/")]
	return ok
}

// New returns the CORS middleware for the browser client. An empty list, or a
// "*" entry, admits every origin. Preflights from unlisted origins get 403.
func New(allowedOrigins []string) gin.HandlerFunc {
	policy := newOriginPolicy(allowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
			if policy.any {
				header.Set("Access-Control-Allow-Origin", "*")
			}
		case policy.permits(origin):
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Expose-Headers", exposedHeaders)
		case c.Request.Method == http.MethodOptions:
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if c.Request.Method == http.MethodOptions {
			header.Set("Access-Control-Allow-Methods", allowedMethods)
			header.Set("Access-Control-Allow-Headers", allowedHeaders)
			header.Set("Access-Control-Max-Age", preflightMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

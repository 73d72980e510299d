package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "request_start"
	processingTimeMs = "processing_time_ms"
)

// WithResponseMeta initialises response metadata storage and stamps the request start.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta records a metadata entry for the current response. It is a no-op
// when WithResponseMeta is not installed.
func SetMeta(c *gin.Context, key string, value interface{}) {
	meta := metaFor(c)
	if meta == nil {
		return
	}
	meta[key] = value
}

// ExtractMeta returns the metadata collected so far with the elapsed processing
// time filled in. It returns nil when WithResponseMeta is not installed.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	meta := metaFor(c)
	if meta == nil {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if startedAt, ok := start.(time.Time); ok {
			meta[processingTimeMs] = time.Since(startedAt).Milliseconds()
		}
	}
	return meta
}

func metaFor(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	raw, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, _ := raw.(map[string]interface{})
	return meta
}

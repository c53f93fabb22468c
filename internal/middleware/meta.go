package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const metaKey = "response_meta"

// WithResponseMeta attaches a metadata map to each request. Handlers add
// entries (cache hits, counts) and the response envelope carries them out
// together with the measured processing time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]interface{}{}
		c.Set(metaKey, meta)

		start := time.Now()
		c.Next()

		if _, set := meta["processing_time_ms"]; !set {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit marks whether the response payload came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	if meta := ExtractMeta(c); meta != nil {
		meta["cache_hit"] = hit
	}
}

// ExtractMeta returns the request's metadata map, or nil when the
// middleware is not installed.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if v, ok := c.Get(metaKey); ok {
		if meta, isMap := v.(map[string]interface{}); isMap {
			return meta
		}
	}
	return nil
}

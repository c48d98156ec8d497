package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"bellezza-backend/cache"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// KeyFunc derives the cache key of a read request.
type KeyFunc func(c *gin.Context) string

// PrincipalURIKey keys by the requesting user and the full request URI.
func PrincipalURIKey(c *gin.Context) string {
	owner := "anonymous"
	if p := utils.CurrentPrincipal(c); p.Authenticated {
		owner = p.UserID.String()
	}
	sum := md5.Sum([]byte(c.Request.URL.RequestURI()))
	return owner + ":" + hex.EncodeToString(sum[:])
}

type cachedResponse struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseCache caches successful read responses per key. Successful writes
// through the same handler drop the cached responses of their scopes.
type ResponseCache struct {
	store cache.Store
	ttl   time.Duration
	keyFn KeyFunc
	log   logrus.FieldLogger
}

func NewResponseCache(store cache.Store, ttl time.Duration, keyFn KeyFunc, log logrus.FieldLogger) *ResponseCache {
	if store == nil {
		store = cache.NoopStore{}
	}
	if keyFn == nil {
		keyFn = PrincipalURIKey
	}
	return &ResponseCache{store: store, ttl: ttl, keyFn: keyFn, log: log}
}

func scopePattern(scope string) string {
	return "view_cache:" + scope + ":*"
}

// Handler returns the middleware for one resource scope. invalidates lists
// further scopes whose cached reads a write here makes stale.
func (rc *ResponseCache) Handler(scope string, invalidates ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodGet && method != http.MethodHead {
			c.Next()
			if c.Writer.Status() < http.StatusBadRequest {
				ctx := c.Request.Context()
				for _, s := range append([]string{scope}, invalidates...) {
					if err := rc.store.DeletePattern(ctx, scopePattern(s)); err != nil {
						rc.log.WithError(err).WithField("scope", s).Warn("response cache invalidate failed")
					}
				}
			}
			return
		}

		ctx := c.Request.Context()
		key := "view_cache:" + scope + ":" + rc.keyFn(c)

		raw, ok, err := rc.store.Get(ctx, key)
		if err != nil {
			rc.log.WithError(err).WithField("key", key).Warn("response cache get failed")
		}
		if ok {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		writer := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header("X-Cache", "MISS")
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rc.store.Set(ctx, key, payload, rc.ttl); err != nil {
			rc.log.WithError(err).WithField("key", key).Warn("response cache set failed")
		}
	}
}

type bodyCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

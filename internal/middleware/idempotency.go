package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"employee-register/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	idempotencyTTL  = 24 * time.Hour
	idempotencyLock = 30 * time.Second
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func IdempotencyCacheKey(path, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
}

// Idempotency replays the stored response of a successful POST carrying the same
// Idempotency-Key for the same user and route. A concurrent duplicate gets 409
// while the first request is still running. A nil client disables the check.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		log := zap.L().Named("middleware.idempotency")
		ctx := c.Request.Context()
		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header(ReplayedHeader, "true")
				c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
				c.Abort()
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("idempotency lookup failed, continuing without replay", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLock).Result()
		if err != nil {
			log.Warn("idempotency lock failed, continuing without replay", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.AbortError(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed")
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{
				Status:      status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.String(),
			})
			if err == nil {
				if err := rdb.Set(ctx, cacheKey, string(payload), idempotencyTTL).Err(); err != nil {
					log.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			log.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}

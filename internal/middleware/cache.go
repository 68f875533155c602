package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/classroom-reservation/internal/config"
)

// captureWriter captures the response body and status while forwarding
// them to the client, bounded by limit bytes.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 || cw.size < cw.limit {
        remain := cw.limit - cw.size
        if cw.limit <= 0 || int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else if remain > 0 {
            cw.buf.Write(b[:remain])
        }
        cw.size += int64(len(b))
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom hashes route and query under the configured prefix.  All
// cached endpoints are anonymous, so nothing user-specific enters the key.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
    tail := c.Path() + "?" + c.Request().URL.RawQuery
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes ctLen][contentType][body].
// Only the Content-Type header is preserved; the cached endpoints emit no
// other meaningful headers.
func encodePayload(status int, contentType string, body []byte) []byte {
    out := make([]byte, 8+len(contentType)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(contentType)))
    copy(out[8:8+len(contentType)], contentType)
    copy(out[8+len(contentType):], body)
    return out
}

func decodePayload(bs []byte) (status int, contentType string, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, "", nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    ctLen := int(binary.BigEndian.Uint32(bs[4:8]))
    if ctLen < 0 || 8+ctLen > len(bs) {
        return 0, "", nil, false
    }
    return status, string(bs[8 : 8+ctLen]), bs[8+ctLen:], true
}

// NewRedisCache serves successful responses to the public browse
// endpoints from Redis.  Hits carry an X-Cache: HIT header; misses are
// captured and stored with the configured TTL.  With caching disabled or
// no Redis available the middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 15 * time.Second
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKeyFrom(cfg, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, contentType, body, ok := decodePayload(bs); ok {
                    if contentType != "" {
                        c.Response().Header().Set(echo.HeaderContentType, contentType)
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
                payload := encodePayload(cw.status, c.Response().Header().Get(echo.HeaderContentType), cw.buf.Bytes())
                _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}

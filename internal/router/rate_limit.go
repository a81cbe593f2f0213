package router

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/trendsight-boutique/internal/cache"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/i18n"
	"github.com/trendsight-boutique/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流主体
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流；BlockSeconds > 0 时首次超限把计数键续期为封禁时长
type RateLimitRule struct {
	Name          string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.too_many_requests"
}

// 返回 {当前计数, 剩余秒数}
var fixedWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[3]) > 0 and n == tonumber(ARGV[2]) + 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {n, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware Redis 固定窗口限流。Redis 不可用或脚本失败时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = KeyByIP
	}
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		subject := strings.TrimSpace(keyFunc(c))
		if subject == "" {
			subject = c.ClientIP()
		}
		key := cache.BuildKey("rate:" + rule.Name + ":" + subject)

		values, err := fixedWindowScript.Run(c.Request.Context(), client, []string{key},
			rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Int64Slice()
		if err != nil || len(values) < 2 {
			logger.Warnw("rate_limit_check_failed", "key", key, "error", err)
			c.Next()
			return
		}

		count, ttl := values[0], values[1]
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}
		wait := retryAfterSeconds(ttl, rule)
		logger.Infow("rate_limit_rejected", "key", key, "count", count, "retry_after", wait)
		response.TooManyRequests(c, i18n.Sprintf(i18n.ResolveLocale(c), rule.messageKey(), wait), wait)
		c.Abort()
	}
}

// retryAfterSeconds 优先用键的剩余 TTL，其次封禁时长、窗口时长，至少 1 秒
func retryAfterSeconds(ttl int64, rule RateLimitRule) int {
	for _, candidate := range []int{int(ttl), rule.BlockSeconds, rule.WindowSeconds} {
		if candidate >= 1 {
			return candidate
		}
	}
	return 1
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 请求体字段（小写）+ IP 限流，字段缺失时退化为 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// maxPeekBodyBytes 限流键解析最多读取的请求体字节数
const maxPeekBodyBytes = 4 << 10

// peekJSONField 读取请求体中的字符串字段，并把请求体放回供后续绑定。
// 只读取前 maxPeekBodyBytes 字节，超出时不解析，剩余部分原样保留给处理器。
func peekJSONField(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	original := c.Request.Body
	body, err := io.ReadAll(io.LimitReader(original, maxPeekBodyBytes+1))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), original), original}
	if err != nil || len(body) == 0 || len(body) > maxPeekBodyBytes {
		return ""
	}

	var payload map[string]json.RawMessage
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	var text string
	if raw, ok := payload[field]; !ok || json.Unmarshal(raw, &text) != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

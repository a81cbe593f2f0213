package shared

import "github.com/gin-gonic/gin"

// ContextUint 读取中间件写入的 uint 值，类型不符视为不存在。
func ContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, v > 0
	case int:
		return uint(v), v > 0
	case float64:
		return uint(v), v > 0
	}
	return 0, false
}

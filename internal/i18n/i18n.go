package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocalePTBR = "pt-BR"
	LocaleEN   = "en-US"

	DefaultLocale = LocalePTBR
)

var (
	supported = []language.Tag{
		language.BrazilianPortuguese,
		language.AmericanEnglish,
	}
	matcher = language.NewMatcher(supported)
)

// ResolveLocale 解析请求语言：?lang= 优先，其次 X-Locale、Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	for _, raw := range []string{
		c.Query("lang"),
		c.GetHeader("X-Locale"),
		c.GetHeader("Accept-Language"),
	} {
		if locale, ok := Match(raw); ok {
			return locale
		}
	}
	return DefaultLocale
}

// Match 将语言标签匹配到受支持的语言
func Match(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	switch index {
	case 1:
		return LocaleEN, true
	default:
		return LocalePTBR, true
	}
}

// T 翻译消息；缺失时依次回退到默认语言和 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

package cache

import (
	"context"
	"strings"
	"time"
)

// CatalogProductTTL 商品详情缓存时长
const CatalogProductTTL = 5 * time.Minute

// CatalogProductKey 商品详情缓存键（按 slug）
func CatalogProductKey(slug string) string {
	return "catalog:product:" + strings.ToLower(strings.TrimSpace(slug))
}

// InvalidateCatalogProduct 商品变更后清理缓存
func InvalidateCatalogProduct(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		keys = append(keys, CatalogProductKey(slug))
	}
	return Del(ctx, keys...)
}

package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// paginate 分页 scope，pageSize 非正时不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsAny 任一列包含 term 即匹配；term 中的通配符按字面量处理
func containsAny(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		dialect := ""
		if db.Dialector != nil {
			dialect = db.Dialector.Name()
		}
		condition, n := containsCondition(dialect, columns...)
		if n == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(term) + "%"
		args := make([]interface{}, n)
		for i := range args {
			args[i] = pattern
		}
		return db.Where(condition, args...)
	}
}

// containsCondition 生成 (a LIKE ? OR b LIKE ?)；postgres 的 LIKE 区分大小写，改用 ILIKE
func containsCondition(dialect string, columns ...string) (string, int) {
	operator := "LIKE"
	if d := strings.ToLower(dialect); d == "postgres" || d == "postgresql" {
		operator = "ILIKE"
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		if column = strings.TrimSpace(column); column != "" {
			parts = append(parts, column+" "+operator+` ? ESCAPE '\'`)
		}
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

// eqIfSet value 去空白后非空时追加等值条件
func eqIfSet(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value = strings.TrimSpace(value); value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// findOne 查询单条记录，不存在时返回 (nil, nil)
func findOne[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var record T
	err := query.First(&record, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

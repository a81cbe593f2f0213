package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money 金额，统一按两位小数舍入；JSON 输出为定点字符串，如 "299.99"
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 舍入到分
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// Times 单价 × 数量
func (m Money) Times(quantity int) Money {
	return NewMoneyFromDecimal(m.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) String() string {
	return m.Round(moneyScale).StringFixed(moneyScale)
}

// MarshalJSON 始终输出带两位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON 同时接受 "12.5" 与 12.5，null 保持零值
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid money %s: %w", b, err)
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}

// Value driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan sql.Scanner
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}

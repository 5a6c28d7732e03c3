package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyScale 店铺以整数 FCFA 计价，输出统一两位小数
const moneyScale = 2

// Money 金额展示类型，内部计算使用整数 FCFA
type Money struct {
	decimal.Decimal
}

// NewMoneyFromInt 从整数 FCFA 创建金额
func NewMoneyFromInt(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// ParseMoney 解析 "4000"、"4000.50"、"4 000 fcfa" 等文本金额
func ParseMoney(raw string) (Money, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "fcfa"))
	cleaned = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".").Replace(cleaned)
	if cleaned == "" {
		return Money{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return NewMoneyFromDecimal(d), nil
}

// FCFA 四舍五入为整数 FCFA
func (m Money) FCFA() int64 {
	return m.Decimal.Round(0).IntPart()
}

// Times 按数量计算行金额
func (m Money) Times(quantity int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Plus 金额相加
func (m Money) Plus(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

// MarshalJSON 输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package service

import (
	"unicode"

	"github.com/trendsight-boutique/internal/config"
)

// PasswordRuleError 密码未满足的具体规则，可通过 errors.Is(err, ErrWeakPassword) 判断
type PasswordRuleError struct {
	Rule string
	args []interface{}
}

func (e PasswordRuleError) Error() string {
	return "weak password: " + e.Rule
}

func (e PasswordRuleError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 对应的国际化 key
func (e PasswordRuleError) Key() string {
	return "error.password_" + e.Rule
}

// Args 国际化参数
func (e PasswordRuleError) Args() []interface{} {
	return e.args
}

type passwordCharClasses struct {
	upper, lower, number, special bool
}

func classifyPassword(password string) passwordCharClasses {
	var classes passwordCharClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.number = true
		default:
			classes.special = true
		}
	}
	return classes
}

// validatePassword 按策略顺序检查，返回第一个未满足的规则
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordRuleError{Rule: "min_length", args: []interface{}{policy.MinLength}}
	}

	classes := classifyPassword(password)
	rules := []struct {
		required bool
		present  bool
		rule     string
	}{
		{policy.RequireUpper, classes.upper, "require_upper"},
		{policy.RequireLower, classes.lower, "require_lower"},
		{policy.RequireNumber, classes.number, "require_number"},
		{policy.RequireSpecial, classes.special, "require_special"},
	}
	for _, r := range rules {
		if r.required && !r.present {
			return PasswordRuleError{Rule: r.rule}
		}
	}
	return nil
}

package service

import (
	"fmt"
	"strings"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/i18n"
)

// CustomerInfo 结账表单
type CustomerInfo struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Address        string `json:"address"`
	City           string `json:"city"`
	DeliveryDate   string `json:"delivery_date"`
	DeliveryTime   string `json:"delivery_time"`
	PaymentMethod  string `json:"payment_method"`
}

// Normalize 去除首尾空白，支付方式默认 card
func (c CustomerInfo) Normalize() CustomerInfo {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.WhatsAppNumber = strings.TrimSpace(c.WhatsAppNumber)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.DeliveryDate = strings.TrimSpace(c.DeliveryDate)
	c.DeliveryTime = strings.TrimSpace(c.DeliveryTime)
	c.PaymentMethod = strings.ToLower(strings.TrimSpace(c.PaymentMethod))
	if c.PaymentMethod == "" {
		c.PaymentMethod = constants.PaymentMethodCard
	}
	return c
}

// FullName 姓名
func (c CustomerInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ValidationError 表单校验错误
type ValidationError struct {
	Step     int      `json:"step"`
	Fields   []string `json:"fields"`
	Messages []string `json:"messages"`
	base     error
}

// Error 实现 error
func (e *ValidationError) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, ", ")
	}
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Fields, ", "))
}

// Unwrap 返回基础错误
func (e *ValidationError) Unwrap() error {
	if e.base == nil {
		return ErrCheckoutValidation
	}
	return e.base
}

type requiredField struct {
	name  string
	value func(CustomerInfo) string
}

var stepRequiredFields = map[int][]requiredField{
	constants.CheckoutStepPersonal: {
		{"first_name", func(c CustomerInfo) string { return c.FirstName }},
		{"last_name", func(c CustomerInfo) string { return c.LastName }},
		{"email", func(c CustomerInfo) string { return c.Email }},
		{"phone", func(c CustomerInfo) string { return c.Phone }},
		{"whatsapp_number", func(c CustomerInfo) string { return c.WhatsAppNumber }},
	},
	constants.CheckoutStepDelivery: {
		{"address", func(c CustomerInfo) string { return c.Address }},
		{"city", func(c CustomerInfo) string { return c.City }},
		{"delivery_date", func(c CustomerInfo) string { return c.DeliveryDate }},
		{"delivery_time", func(c CustomerInfo) string { return c.DeliveryTime }},
	},
}

var stepMessageKeys = map[int]string{
	constants.CheckoutStepPersonal: "checkout.step_personal.description",
	constants.CheckoutStepDelivery: "checkout.step_delivery.description",
}

// ValidateStep 校验向导单步必填字段，第 3 步为确认页无需校验
func ValidateStep(step int, info CustomerInfo, locale string) error {
	if step < constants.CheckoutStepPersonal || step > constants.CheckoutStepConfirm {
		return fmt.Errorf("%w: %d", ErrCheckoutStepInvalid, step)
	}
	fields, ok := stepRequiredFields[step]
	if !ok {
		return nil
	}
	info = info.Normalize()
	missing := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.value(info) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{
		Step:     step,
		Fields:   missing,
		Messages: []string{i18n.T(locale, stepMessageKeys[step])},
	}
}

// ValidateAll 依次校验全部步骤，返回第一个失败步骤
func ValidateAll(info CustomerInfo, locale string) error {
	for step := constants.CheckoutStepPersonal; step <= constants.CheckoutStepConfirm; step++ {
		if err := ValidateStep(step, info, locale); err != nil {
			return err
		}
	}
	return nil
}

// NextStep 校验当前步骤后前进，最后一步保持不变
func NextStep(step int, info CustomerInfo, locale string) (int, error) {
	if err := ValidateStep(step, info, locale); err != nil {
		return step, err
	}
	if step >= constants.CheckoutStepConfirm {
		return constants.CheckoutStepConfirm, nil
	}
	return step + 1, nil
}

// PrevStep 后退一步，第一步保持不变
func PrevStep(step int) int {
	if step <= constants.CheckoutStepPersonal {
		return constants.CheckoutStepPersonal
	}
	if step > constants.CheckoutStepConfirm {
		return constants.CheckoutStepConfirm
	}
	return step - 1
}

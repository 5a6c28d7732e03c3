package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/models"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// SummaryLine 订单摘要行
type SummaryLine struct {
	ProductID    uint         `json:"id"`
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	OptionLabels []string     `json:"option_labels,omitempty"`
	UnitPrice    models.Money `json:"unit_price"`
	LineTotal    models.Money `json:"line_total"`
}

// CheckoutSummary 结账摘要
type CheckoutSummary struct {
	Lines       []SummaryLine `json:"items"`
	Subtotal    int64         `json:"-"`
	DeliveryFee int64         `json:"-"`
	Total       int64         `json:"-"`
	ItemCount   int           `json:"item_count"`
	Text        string        `json:"text"`
}

// MarshalJSON 金额以 2 位小数字符串输出
func (s CheckoutSummary) MarshalJSON() ([]byte, error) {
	type alias CheckoutSummary
	return json.Marshal(struct {
		alias
		Subtotal    models.Money `json:"subtotal"`
		DeliveryFee models.Money `json:"delivery_fee"`
		Total       models.Money `json:"total"`
	}{
		alias:       alias(s),
		Subtotal:    models.NewMoneyFromInt(s.Subtotal),
		DeliveryFee: models.NewMoneyFromInt(s.DeliveryFee),
		Total:       models.NewMoneyFromInt(s.Total),
	})
}

// DeliveryFee 配送费：小计超过 6000 为 500，否则 1000
func DeliveryFee(subtotal int64) int64 {
	if subtotal > constants.DeliveryFeeThreshold {
		return constants.DeliveryFeeReduced
	}
	return constants.DeliveryFeeStandard
}

// BuildSummary 根据购物车与表单生成订单摘要
func BuildSummary(entries []models.CartEntry, customer CustomerInfo, now time.Time) CheckoutSummary {
	customer = customer.Normalize()
	subtotal := CartTotal(entries)
	fee := DeliveryFee(subtotal)

	lines := make([]SummaryLine, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, SummaryLine{
			ProductID:    entry.ProductID,
			Name:         entry.Name,
			Quantity:     entry.Quantity,
			OptionLabels: SelectedChoiceLabels(entry),
			UnitPrice:    models.NewMoneyFromInt(UnitPrice(entry)),
			LineTotal:    models.NewMoneyFromInt(LineTotal(entry)),
		})
	}

	summary := CheckoutSummary{
		Lines:       lines,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
		ItemCount:   ItemCount(entries),
	}
	summary.Text = orderMessage{
		header:        "🍹 *NOUVELLE COMMANDE SNAKI* 🍹",
		name:          customer.FullName(),
		phone:         customer.Phone,
		whatsapp:      customer.WhatsAppNumber,
		email:         customer.Email,
		address:       customer.Address,
		city:          customer.City,
		deliveryDate:  customer.DeliveryDate,
		deliveryTime:  customer.DeliveryTime,
		lines:         lines,
		subtotal:      subtotal,
		fee:           fee,
		total:         subtotal + fee,
		paymentMethod: PaymentMethodLabel(customer.PaymentMethod),
		createdAt:     now,
		status:        "En attente de confirmation",
	}.render()
	return summary
}

// PaymentMethodLabel 支付方式展示名
func PaymentMethodLabel(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case constants.PaymentMethodCard:
		return "Carte Bancaire"
	case constants.PaymentMethodFedaPay:
		return "FedaPay"
	default:
		return "PayPal"
	}
}

// FormatFrenchDateTime 法语长日期，例如 "14 octobre 2026 à 09:05"
func FormatFrenchDateTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d à %02d:%02d", t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatAmount 金额保留两位小数
func FormatAmount(amount int64) string {
	return models.NewMoneyFromInt(amount).String()
}

// orderMessage WhatsApp 订单消息
type orderMessage struct {
	header        string
	orderID       string
	reference     string
	name          string
	phone         string
	whatsapp      string
	email         string
	address       string
	city          string
	deliveryDate  string
	deliveryTime  string
	lines         []SummaryLine
	subtotal      int64
	fee           int64
	total         int64
	paymentMethod string
	createdAt     time.Time
	status        string
}

func (m orderMessage) render() string {
	var b strings.Builder
	b.WriteString(m.header + "\n\n")

	if m.orderID != "" || m.reference != "" {
		b.WriteString("🆔 *RÉFÉRENCE*\n")
		fmt.Fprintf(&b, "Commande: %s\n", m.orderID)
		fmt.Fprintf(&b, "Paiement: %s\n\n", m.reference)
	}

	b.WriteString("👤 *INFORMATIONS CLIENT*\n")
	fmt.Fprintf(&b, "Nom: %s\n", m.name)
	fmt.Fprintf(&b, "Téléphone: %s\n", m.phone)
	fmt.Fprintf(&b, "WhatsApp: %s\n", m.whatsapp)
	fmt.Fprintf(&b, "Email: %s\n\n", m.email)

	b.WriteString("📍 *ADRESSE DE LIVRAISON*\n")
	b.WriteString(m.address + "\n")
	b.WriteString(m.city + "\n\n")

	b.WriteString("📅 *DÉTAILS DE LIVRAISON*\n")
	fmt.Fprintf(&b, "Date: %s\n", m.deliveryDate)
	fmt.Fprintf(&b, "Heure: %s\n\n", m.deliveryTime)

	b.WriteString("🛒 *DÉTAILS DE LA COMMANDE*\n")
	for _, line := range m.lines {
		fmt.Fprintf(&b, "• %dx %s", line.Quantity, line.Name)
		for _, label := range line.OptionLabels {
			fmt.Fprintf(&b, " (%s)", label)
		}
		fmt.Fprintf(&b, " - %s fcfa\n", line.LineTotal.String())
	}

	b.WriteString("\n💰 *RÉCAPITULATIF*\n")
	fmt.Fprintf(&b, "Sous-total: %s fcfa\n", FormatAmount(m.subtotal))
	fmt.Fprintf(&b, "Livraison: %s fcfa\n", FormatAmount(m.fee))
	fmt.Fprintf(&b, "*TOTAL: %s fcfa*\n\n", FormatAmount(m.total))

	b.WriteString("💳 *MÉTHODE DE PAIEMENT*\n")
	b.WriteString(m.paymentMethod + "\n\n")

	b.WriteString("📅 *DATE ET HEURE*\n")
	b.WriteString(FormatFrenchDateTime(m.createdAt) + "\n\n")

	b.WriteString("🚚 *STATUT*\n")
	b.WriteString(m.status)
	return b.String()
}

package service

import "github.com/snaki-next/internal/models"

// LookupChoice 按分组与选项 ID 查找选项，未找到返回 false
func LookupChoice(options models.ProductOptions, groupKey, choiceID string) (models.Choice, bool) {
	group, ok := options[groupKey]
	if !ok {
		return models.Choice{}, false
	}
	for _, choice := range group.Choices {
		if choice.ID == choiceID {
			return choice, true
		}
	}
	return models.Choice{}, false
}

// UnitPrice 单价 = 基础价格 + 已选选项加价
// 快照中找不到的分组或选项按 0 计入
func UnitPrice(entry models.CartEntry) int64 {
	price := entry.Price
	for groupKey, choiceID := range entry.SelectedOptions {
		choice, ok := LookupChoice(entry.Options, groupKey, choiceID)
		if !ok {
			continue
		}
		price += choice.Price
	}
	return price
}

// LineTotal 行小计 = 单价 × 数量
func LineTotal(entry models.CartEntry) int64 {
	return UnitPrice(entry) * int64(entry.Quantity)
}

// CartTotal 购物车总额，始终由行数据重新计算
func CartTotal(entries []models.CartEntry) int64 {
	var total int64
	for _, entry := range entries {
		total += LineTotal(entry)
	}
	return total
}

// ItemCount 商品件数
func ItemCount(entries []models.CartEntry) int {
	count := 0
	for _, entry := range entries {
		count += entry.Quantity
	}
	return count
}

// SelectedChoiceLabels 返回已选选项的展示名（按分组 key 排序）
func SelectedChoiceLabels(entry models.CartEntry) []string {
	labels := make([]string, 0, len(entry.SelectedOptions))
	for _, groupKey := range entry.Options.Keys() {
		choiceID, ok := entry.SelectedOptions[groupKey]
		if !ok {
			continue
		}
		if choice, found := LookupChoice(entry.Options, groupKey, choiceID); found {
			labels = append(labels, choice.Label)
		}
	}
	return labels
}

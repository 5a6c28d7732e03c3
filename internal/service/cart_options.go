package service

import (
	"fmt"
	"strings"

	"github.com/snaki-next/internal/models"
)

// SameSelection 判断两组已选选项是否相同
// nil 与空 map 视为相同；否则要求 key 集合与每个 key 的取值完全一致
func SameSelection(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		other, ok := b[key]
		if !ok || other != value {
			return false
		}
	}
	return true
}

// NormalizeSelection 校验并补全选项：缺失的分组默认取第一个选项
// 未知分组或未知选项返回 ErrOptionSelectionInvalid；无选项商品返回空选择
func NormalizeSelection(product models.Product, selected map[string]string) (map[string]string, error) {
	if !product.HasOptions() {
		for key := range selected {
			return nil, fmt.Errorf("%w: product %d has no option group %q", ErrOptionSelectionInvalid, product.ID, key)
		}
		return nil, nil
	}
	for key, choiceID := range selected {
		if _, ok := LookupChoice(product.Options, key, strings.TrimSpace(choiceID)); !ok {
			return nil, fmt.Errorf("%w: %s=%s", ErrOptionSelectionInvalid, key, choiceID)
		}
	}
	normalized := make(map[string]string, len(product.Options))
	for _, key := range product.Options.Keys() {
		if choiceID, ok := selected[key]; ok {
			normalized[key] = strings.TrimSpace(choiceID)
			continue
		}
		group := product.Options[key]
		if len(group.Choices) == 0 {
			return nil, fmt.Errorf("%w: option group %q has no choices", ErrOptionSelectionInvalid, key)
		}
		normalized[key] = group.Choices[0].ID
	}
	return normalized, nil
}

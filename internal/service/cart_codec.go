package service

import (
	"encoding/json"
	"strings"

	"github.com/snaki-next/internal/models"
)

// EncodeCart 序列化购物车（完整数组，空购物车输出 []）
func EncodeCart(entries []models.CartEntry) (string, error) {
	if entries == nil {
		entries = []models.CartEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeCart 反序列化购物车
func DecodeCart(raw string) ([]models.CartEntry, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []models.CartEntry{}, nil
	}
	var entries []models.CartEntry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}
	return entries, nil
}

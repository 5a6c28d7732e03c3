package catalog

import (
	"strings"

	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/models"
)

const imageBasePath = "/images/bubbletea/"

type bubbleTea struct {
	id          uint
	name        string
	description string
	popular     bool
	nutrition   models.NutritionalInfo
	image       string
}

var bubbleTeas = []bubbleTea{
	{101, "Choco Perle", "Tapioca + Milo + Lait", true, models.NutritionalInfo{Calories: 320, Protein: "7", Carbs: "48", Fat: "5"}, "chocoperle.webp"},
	{102, "Menthe Latté", "Tapioca + Sirop de menthe + Lait", true, models.NutritionalInfo{Calories: 280, Protein: "6", Carbs: "45", Fat: "4"}, "menthelatte.webp"},
	{103, "Tropic Pearl", "Tapioca + Sirop tropical + Lait", true, models.NutritionalInfo{Calories: 260, Protein: "5", Carbs: "42", Fat: "3"}, "tropicpearl.webp"},
	{104, "Bubble Twist", "Tapioca + Sirop de menthe + Sirop tropical + Lait", false, models.NutritionalInfo{Calories: 300, Protein: "6", Carbs: "47", Fat: "4"}, "bubbletwist.webp"},
	{105, "Fraise Party", "Boba fraise + Sirop de fraise + Lait", true, models.NutritionalInfo{Calories: 290, Protein: "5", Carbs: "46", Fat: "4"}, "fraiseparty.webp"},
	{106, "StrawMilo", "Boba fraise + Milo + Lait", true, models.NutritionalInfo{Calories: 320, Protein: "7", Carbs: "48", Fat: "5"}, "strawmilo.webp"},
	{107, "Sweet Tropik", "Boba fraise + Sirop tropical + Lait", false, models.NutritionalInfo{Calories: 275, Protein: "5", Carbs: "44", Fat: "4"}, "sweettropik.webp"},
	{108, "Menthe Fraise", "Boba fraise + Sirop de menthe + Lait", true, models.NutritionalInfo{Calories: 270, Protein: "5", Carbs: "43", Fat: "3"}, "menthefraise.webp"},
	{109, "TropiPop", "Boba passion + Sirop tropical + Lait", true, models.NutritionalInfo{Calories: 290, Protein: "6", Carbs: "47", Fat: "4"}, "tropipop.webp"},
	{110, "Passion Lait", "Boba passion + Lait", true, models.NutritionalInfo{Calories: 260, Protein: "5", Carbs: "43", Fat: "3"}, "passionlait.webp"},
	{111, "Passion Mint", "Boba passion + Sirop de menthe + Lait", false, models.NutritionalInfo{Calories: 270, Protein: "5", Carbs: "44", Fat: "3"}, "passionmint.webp"},
}

// BubbleTeaBasePrice 珍珠奶茶统一基础价格（FCFA）
const BubbleTeaBasePrice int64 = 1500

// MilkOptions 珍珠奶茶的牛奶偏好选项
func MilkOptions() models.ProductOptions {
	return models.ProductOptions{
		"milk": {
			Type:  "radio",
			Label: "Préférence",
			Choices: []models.Choice{
				{ID: "with_milk", Label: "Avec lait", Price: 500},
				{ID: "without_milk", Label: "Sans lait", Price: 0},
			},
		},
	}
}

// Products 返回静态目录的副本
func Products() []models.Product {
	products := make([]models.Product, 0, len(bubbleTeas))
	for i, item := range bubbleTeas {
		products = append(products, models.Product{
			ID:              item.id,
			Name:            item.name,
			Description:     item.description,
			Price:           BubbleTeaBasePrice,
			Category:        constants.CategoryBubbleTea,
			Image:           imageBasePath + item.image,
			Popular:         item.popular,
			Ingredients:     ingredientsOf(item.description),
			NutritionalInfo: item.nutrition,
			Options:         MilkOptions(),
			IsActive:        true,
			SortOrder:       i,
		})
	}
	return products
}

// Categories 返回静态分类
func Categories() []models.Category {
	return []models.Category{
		{Slug: constants.CategoryTacos, Name: "Tacos", Icon: "taco", SortOrder: 0},
		{Slug: constants.CategoryBubbleTea, Name: "Bubble Tea", Icon: "cup", SortOrder: 1},
	}
}

// ingredientsOf 配料即描述按 " + " 拆分
func ingredientsOf(description string) models.StringArray {
	parts := strings.Split(description, " + ")
	ingredients := make(models.StringArray, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}

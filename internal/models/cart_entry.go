package models

// CartEntry 购物车行
// 商品名称、价格、图片与可选项在加入时快照，后续目录变更不影响已有购物车
type CartEntry struct {
	ProductID       uint              `json:"id"`
	Name            string            `json:"name"`
	Price           int64             `json:"price"`
	Image           string            `json:"image,omitempty"`
	Options         ProductOptions    `json:"options,omitempty"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
}

// NewCartEntry 从商品创建购物车行快照
func NewCartEntry(product Product, selected map[string]string, quantity int) CartEntry {
	return CartEntry{
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
		Image:           product.Image,
		Options:         product.Options.Clone(),
		Quantity:        quantity,
		SelectedOptions: cloneSelection(selected),
	}
}

// Clone 深拷贝购物车行
func (e CartEntry) Clone() CartEntry {
	e.Options = e.Options.Clone()
	e.SelectedOptions = cloneSelection(e.SelectedOptions)
	return e
}

func cloneSelection(selected map[string]string) map[string]string {
	if len(selected) == 0 {
		return nil
	}
	cloned := make(map[string]string, len(selected))
	for key, value := range selected {
		cloned[key] = value
	}
	return cloned
}

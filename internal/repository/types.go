package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Search      string
	PopularOnly bool
	ExcludeID   uint
	Limit       int
	OnlyActive  bool
}

package public

import "github.com/snaki-next/internal/provider"

// Handler 前台公开接口处理器
// 说明：店铺无账户体系，购物车按会话区分。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package public

import (
	"strconv"

	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
// quantity 上限与 constants.CartQuantityMax 一致
type AddCartItemRequest struct {
	ProductID       uint              `json:"product_id" binding:"required"`
	Quantity        int               `json:"quantity" binding:"min=0,max=99"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

// UpdateCartItemRequest 修改数量请求
// 携带 selectedOptions 时只修改对应配置的行；quantity < 1 不报错，购物车保持不变
type UpdateCartItemRequest struct {
	Quantity        int               `json:"quantity" binding:"max=99"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

// CartMutationResponse 购物车变更响应
type CartMutationResponse struct {
	Cart   *service.CartView   `json:"cart"`
	Toasts []service.CartEvent `json:"toasts"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	view, err := h.CartService.Get(c.Request.Context(), session)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recorder := service.NewCartEventRecorder()
	view, err := h.CartService.AddItem(c.Request.Context(), session, service.AddCartItemInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
	}, recorder)
	h.respondCartMutation(c, view, recorder, err)
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	recorder := service.NewCartEventRecorder()
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), session, service.UpdateCartItemInput{
		ProductID:       productID,
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
	}, recorder)
	h.respondCartMutation(c, view, recorder, err)
}

// DeleteCartItem 删除商品的全部购物车行
func (h *Handler) DeleteCartItem(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	recorder := service.NewCartEventRecorder()
	view, err := h.CartService.RemoveItem(c.Request.Context(), session, productID, recorder)
	h.respondCartMutation(c, view, recorder, err)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	recorder := service.NewCartEventRecorder()
	view, err := h.CartService.Clear(c.Request.Context(), session, recorder)
	h.respondCartMutation(c, view, recorder, err)
}

func (h *Handler) respondCartMutation(c *gin.Context, view *service.CartView, recorder *service.CartEventRecorder, err error) {
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, CartMutationResponse{
		Cart:   view,
		Toasts: recorder.Toasts(requestLocale(c)),
	})
}

func parseProductIDParam(c *gin.Context) (uint, bool) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(productID), true
}

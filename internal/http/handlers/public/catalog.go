package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/snaki-next/internal/cache"
	"github.com/snaki-next/internal/constants"
	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/notify/whatsapp"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second

	// 菜单页默认一次展示整个分类
	productPageSizeDefault = 50
)

// ProductDetailView 商品详情与相关推荐
type ProductDetailView struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// GetConfig 获取店铺公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	currency := constants.CurrencyLabelDefault
	whatsAppNumber := ""
	if h.Config != nil {
		if label := strings.TrimSpace(h.Config.Checkout.CurrencyLabel); label != "" {
			currency = label
		}
		whatsAppNumber = whatsapp.NormalizeNumber(h.Config.Checkout.WhatsAppNumber)
	}

	data := map[string]interface{}{
		"languages":       constants.SupportedLocales,
		"currency":        currency,
		"whatsapp_number": whatsAppNumber,
		"delivery_fee": map[string]interface{}{
			"threshold": constants.DeliveryFeeThreshold,
			"reduced":   constants.DeliveryFeeReduced,
			"standard":  constants.DeliveryFeeStandard,
		},
		"payment_methods": []string{
			constants.PaymentMethodCard,
			constants.PaymentMethodPaypal,
			constants.PaymentMethodFedaPay,
		},
	}

	payment := map[string]interface{}{"enabled": false}
	if h.PaymentService.Enabled() && h.FedaPayClient != nil {
		fedaCfg := h.FedaPayClient.Config()
		payment = map[string]interface{}{
			"enabled":     true,
			"provider":    constants.PaymentMethodFedaPay,
			"public_key":  fedaCfg.PublicKey,
			"environment": fedaCfg.Environment,
			"currency":    fedaCfg.Currency,
		}
	}
	data["payment"] = payment

	if h.CaptchaService != nil {
		data["captcha"] = h.CaptchaService.GetPublicSetting()
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetProducts 获取商品列表（分类 / 搜索 / 热门）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, productPageSizeDefault)

	popular, _ := strconv.ParseBool(strings.TrimSpace(c.Query("popular")))
	products, total, err := h.ProductService.ListPublic(service.ProductQuery{
		Category:    strings.TrimSpace(c.Query("category")),
		Search:      strings.TrimSpace(c.Query("q")),
		PopularOnly: popular,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductService.GetPublic(c.Request.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	related, err := h.ProductService.Related(product.ID)
	if err != nil {
		handlershared.RequestLog(c).Warnw("public_product_related_failed", "product_id", product.ID, "error", err)
		related = []models.Product{}
	}
	response.Success(c, ProductDetailView{Product: *product, Related: related})
}

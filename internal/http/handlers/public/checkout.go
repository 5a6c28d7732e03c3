package public

import (
	"github.com/snaki-next/internal/constants"
	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutStepRequest 单步校验请求
type CheckoutStepRequest struct {
	Step     int                  `json:"step" binding:"required"`
	Customer service.CustomerInfo `json:"customer"`
}

// CheckoutPreviewRequest 结账预览请求
type CheckoutPreviewRequest struct {
	Customer service.CustomerInfo `json:"customer"`
}

// CheckoutSubmitRequest 结账提交请求
type CheckoutSubmitRequest struct {
	Customer service.CustomerInfo `json:"customer"`
	handlershared.CaptchaPayloadRequest
}

// ValidateCheckoutStep 校验当前步骤并返回下一步
func (h *Handler) ValidateCheckoutStep(c *gin.Context) {
	var req CheckoutStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	next, err := service.NextStep(req.Step, req.Customer, requestLocale(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{
		"step":      req.Step,
		"next_step": next,
		"prev_step": service.PrevStep(req.Step),
		"valid":     true,
	})
}

// PreviewCheckout 生成订单摘要（不清空购物车）
func (h *Handler) PreviewCheckout(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	var req CheckoutPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	summary, err := h.CheckoutService.Preview(c.Request.Context(), session, req.Customer)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, summary)
}

// SubmitCheckout 提交订单并返回 WhatsApp 链接
func (h *Handler) SubmitCheckout(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	var req CheckoutSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneCheckoutSubmit, req.ToServicePayload()); err != nil {
			respondCheckoutError(c, err)
			return
		}
	}
	result, err := h.CheckoutService.Submit(c.Request.Context(), session, req.Customer, requestLocale(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

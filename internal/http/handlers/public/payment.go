package public

import (
	"errors"
	"strings"

	"github.com/snaki-next/internal/constants"
	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest 创建支付请求
type CreatePaymentRequest struct {
	Customer service.CustomerInfo `json:"customer"`
	handlershared.CaptchaPayloadRequest
}

// CreatePayment 为当前购物车创建 FedaPay 支付
func (h *Handler) CreatePayment(c *gin.Context) {
	session, ok := getCartSession(c)
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaScenePaymentCreate, req.ToServicePayload()); err != nil {
			respondPaymentCreateError(c, err)
			return
		}
	}
	req.Customer.PaymentMethod = constants.PaymentMethodFedaPay
	result, err := h.PaymentService.CreatePayment(c.Request.Context(), session, req.Customer, requestLocale(c))
	if err != nil {
		if result != nil && result.Error != "" {
			handlershared.RespondErrorWithData(c, paymentFailureCode(err), result.Error, gin.H{"order_id": result.OrderID}, err)
			return
		}
		respondPaymentCreateError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// PaymentCallback 支付完成回调，队列启用时异步确认
func (h *Handler) PaymentCallback(c *gin.Context) {
	paymentID := strings.TrimSpace(c.Query("payment_id"))
	if paymentID == "" {
		paymentID = strings.TrimSpace(c.Query("id"))
	}
	if paymentID == "" {
		respondError(c, response.CodeBadRequest, "error.payment_invalid", nil)
		return
	}
	if !h.PaymentService.Enabled() {
		respondError(c, response.CodeBadRequest, "error.payment_disabled", nil)
		return
	}

	queued, err := h.PaymentService.EnqueueCallback(paymentID)
	if err != nil {
		handlershared.RequestLog(c).Warnw("public_payment_callback_enqueue_failed", "payment_id", paymentID, "error", err)
	}
	if queued {
		response.Success(c, service.CallbackResult{Queued: true, Status: constants.PaymentStatusPending})
		return
	}

	result, err := h.PaymentService.HandleCallback(c.Request.Context(), paymentID, requestLocale(c))
	if err != nil {
		respondPaymentCallbackError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

func paymentFailureCode(err error) int {
	for _, rule := range paymentErrorRules {
		if errors.Is(err, rule.target) {
			return rule.code
		}
	}
	return response.CodeInternal
}

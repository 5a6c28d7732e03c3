package public

import (
	"errors"

	handlershared "github.com/snaki-next/internal/http/handlers/shared"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// respondValidationError 校验错误携带字段与步骤，前端据此定位表单
func respondValidationError(c *gin.Context, err error) bool {
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}
	handlershared.RespondErrorWithData(c, response.CodeUnprocessable, validationErr.Error(), gin.H{
		"step":     validationErr.Step,
		"fields":   validationErr.Fields,
		"messages": validationErr.Messages,
	}, nil)
	return true
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrCartSessionInvalid, code: response.CodeBadRequest, key: "error.cart_session_invalid"},
	{target: service.ErrCartFetchFailed, code: response.CodeInternal, key: "error.cart_fetch_failed"},
	{target: service.ErrCartPersistFailed, code: response.CodeInternal, key: "error.cart_persist_failed"},
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrProductFetchFailed, code: response.CodeInternal, key: "error.product_fetch_failed"},
	{target: service.ErrOptionSelectionInvalid, code: response.CodeBadRequest, key: "error.option_selection_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrCartLineNotFound, code: response.CodeNotFound, key: "error.cart_line_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCheckoutStepInvalid, code: response.CodeBadRequest, key: "error.checkout_step_invalid"},
	{target: service.ErrCheckoutValidation, code: response.CodeUnprocessable, key: "error.checkout_validation"},
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, key: "error.captcha_config_invalid"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentDisabled, code: response.CodeBadRequest, key: "error.payment_disabled"},
	{target: service.ErrPaymentInvalid, code: response.CodeBadRequest, key: "error.payment_invalid"},
	{target: service.ErrPaymentUnavailable, code: response.CodeServiceUnavailable, key: "error.payment_gateway_unavailable"},
	{target: service.ErrPaymentGatewayInvalid, code: response.CodeBadGateway, key: "error.payment_gateway_response_invalid"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeBadGateway, key: "error.payment_gateway_request_failed"},
	{target: service.ErrQueueUnavailable, code: response.CodeInternal, key: "error.queue_unavailable"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartCommonErrorRules, cartMutationErrorRules), response.CodeInternal, "error.internal_error")
}

func respondCheckoutError(c *gin.Context, err error) {
	if respondValidationError(c, err) {
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, captchaErrorRules, cartCommonErrorRules), response.CodeInternal, "error.checkout_submit_failed")
}

func respondPaymentCreateError(c *gin.Context, err error) {
	if respondValidationError(c, err) {
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(paymentErrorRules, captchaErrorRules, cartCommonErrorRules), response.CodeInternal, "error.payment_gateway_request_failed")
}

func respondPaymentCallbackError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.payment_callback_failed")
}

package service

import "errors"

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrProductNotAvailable    = errors.New("product not available")
	ErrProductFetchFailed     = errors.New("product fetch failed")
	ErrOptionSelectionInvalid = errors.New("option selection invalid")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrCartLineNotFound       = errors.New("cart line not found")
	ErrCartEmpty              = errors.New("cart is empty")
	ErrCartPersistFailed      = errors.New("cart persist failed")
	ErrCartFetchFailed        = errors.New("cart fetch failed")
	ErrCartSessionInvalid     = errors.New("cart session invalid")
	ErrCheckoutValidation     = errors.New("checkout validation failed")
	ErrCheckoutStepInvalid    = errors.New("checkout step invalid")
	ErrPaymentInvalid         = errors.New("payment invalid")
	ErrPaymentDisabled        = errors.New("payment disabled")
	ErrPaymentGatewayFailed   = errors.New("payment gateway failed")
	ErrPaymentGatewayInvalid  = errors.New("payment gateway response invalid")
	ErrPaymentUnavailable     = errors.New("payment gateway unavailable")
	ErrCaptchaRequired        = errors.New("captcha required")
	ErrCaptchaInvalid         = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid   = errors.New("captcha config invalid")
	ErrQueueUnavailable       = errors.New("queue unavailable")
)

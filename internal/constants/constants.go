package constants

// 商品分类常量
const (
	CategoryTacos     = "tacos"
	CategoryBubbleTea = "bubble-tea"
)

// 配送费阶梯常量（单位：FCFA）
const (
	DeliveryFeeThreshold = 6000
	DeliveryFeeReduced   = 500
	DeliveryFeeStandard  = 1000
)

// 购物车存储常量
const (
	CartStorageKeyDefault = "fastbite-cart"
	CartStorageDatabase   = "database"
	CartStorageRedis      = "redis"
	CartStorageMemory     = "memory"
	CartSessionHeader     = "X-Cart-Session"
	CartSessionCookie     = "cart_session"
	CartSessionContextKey = "cart_session"
)

// CartQuantityMax 单行商品数量上限，合并后的数量同样受限
const CartQuantityMax = 99

// 购物车事件常量
const (
	CartEventProductAdded   = "product_added"
	CartEventProductRemoved = "product_removed"
	CartEventQuantityUpdate = "quantity_updated"
	CartEventCartCleared    = "cart_cleared"
)

// 结账步骤常量
const (
	CheckoutStepPersonal = 1
	CheckoutStepDelivery = 2
	CheckoutStepConfirm  = 3
)

// 支付方式常量
const (
	PaymentMethodCard    = "card"
	PaymentMethodPaypal  = "paypal"
	PaymentMethodFedaPay = "fedapay"
)

// 支付状态常量（FedaPay）
const (
	PaymentStatusPending   = "pending"
	PaymentStatusApproved  = "approved"
	PaymentStatusDeclined  = "declined"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusExpired   = "expired"
)

// 订单编号前缀
const (
	OrderIDPrefix = "snaki"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneCheckoutSubmit = "checkout_submit"
	CaptchaScenePaymentCreate  = "payment_create"
)

// 队列常量
const (
	QueueDefault       = "default"
	TaskPaymentConfirm = "payment:confirm"
	TaskOrderDispatch  = "order:dispatch"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "snaki"
)

// 币种常量
const (
	CurrencyXOF          = "XOF"
	CurrencyLabelDefault = "fcfa"
)

// 站点语言常量
const (
	LocaleFrFR = "fr-FR"
	LocaleEnUS = "en-US"
)

// SupportedLocales 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleFrFR, LocaleEnUS}

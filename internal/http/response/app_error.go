package response

// AppError 接口错误：业务码、国际化键与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable 服务端与上游故障可由用户重新提交
func (e *AppError) Retryable() bool {
	return e != nil && e.Code >= CodeInternal
}

// NewAppError 创建带国际化键的接口错误
func NewAppError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}

// WrapError 包装错误（自定义消息，无国际化键）
func WrapError(code int, message string, err error) *AppError {
	return NewAppError(code, "", message, err)
}

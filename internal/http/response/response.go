package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构，业务错误同样以 HTTP 200 返回
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
	HasMore   bool  `json:"has_more"`
}

// NewPagination 根据总数计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	var totalPage int64
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
		HasMore:   int64(page) < totalPage,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, CodeOK, "success", data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	write(c, CodeOK, msg, data)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: pagination,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	write(c, statusCode, msg, withRequestID(c, nil))
}

// ErrorWithData 错误响应（带数据）
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	write(c, statusCode, msg, withRequestID(c, data))
}

// Fail 按 AppError 返回错误，附带 error_key 供前端本地化
func Fail(c *gin.Context, appErr *AppError, data interface{}) {
	if appErr == nil {
		appErr = WrapError(CodeInternal, "error", nil)
	}
	payload := withRequestID(c, data)
	if appErr.Key != "" || appErr.Retryable() {
		fields := asMap(payload)
		if appErr.Key != "" {
			fields["error_key"] = appErr.Key
		}
		if appErr.Retryable() {
			fields["retryable"] = true
		}
		payload = fields
	}
	write(c, appErr.Code, appErr.Message, payload)
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

func write(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       data,
	})
}

func withRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		requestID = c.GetString("request_id")
	}
	if requestID == "" {
		return data
	}
	fields := asMap(data)
	if _, ok := fields["request_id"]; !ok {
		fields["request_id"] = requestID
	}
	return fields
}

// asMap 将数据转为可追加字段的 map，非 map 数据放入 data 字段
func asMap(data interface{}) gin.H {
	switch v := data.(type) {
	case nil:
		return gin.H{}
	case gin.H:
		return v
	case map[string]interface{}:
		return gin.H(v)
	default:
		return gin.H{"data": data}
	}
}

package public

import (
	"errors"
	"strings"

	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaChallengeResponse 验证码挑战响应
type CaptchaChallengeResponse struct {
	Scene         string `json:"scene,omitempty"`
	Required      bool   `json:"required"`
	CaptchaID     string `json:"captcha_id,omitempty"`
	ImageBase64   string `json:"image_base64,omitempty"`
	ExpireSeconds int    `json:"expire_seconds,omitempty"`
}

// GetImageCaptcha 获取图片验证码挑战
// 传入 scene 且该场景未开启时不生成图片，前端据此跳过验证码
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}

	setting := h.CaptchaService.Setting()
	scene := strings.ToLower(strings.TrimSpace(c.Query("scene")))
	if scene != "" && !setting.IsSceneEnabled(scene) {
		response.Success(c, CaptchaChallengeResponse{Scene: scene, Required: false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}

	response.Success(c, CaptchaChallengeResponse{
		Scene:         scene,
		Required:      true,
		CaptchaID:     challenge.CaptchaID,
		ImageBase64:   challenge.ImageBase64,
		ExpireSeconds: setting.Image.ExpireSeconds,
	})
}

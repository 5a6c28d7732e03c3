package service

import (
	"errors"
	"testing"
	"time"

	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

func TestNormalizeCaptchaSetting(t *testing.T) {
	setting := NormalizeCaptchaSetting(CaptchaSetting{
		Provider: " IMAGE ",
		Image:    CaptchaImageSetting{Length: 12, Width: 10, Height: 10, ExpireSeconds: 5, MaxStore: 1, NoiseCount: -1},
	})
	if setting.Provider != constants.CaptchaProviderImage {
		t.Fatalf("provider should normalize to image, got %s", setting.Provider)
	}
	if setting.Image.Length != 5 || setting.Image.Width != 240 || setting.Image.Height != 80 {
		t.Fatalf("unexpected image dims: %+v", setting.Image)
	}
	if setting.Image.ExpireSeconds != 300 || setting.Image.MaxStore != 10240 || setting.Image.NoiseCount != 2 {
		t.Fatalf("unexpected image limits: %+v", setting.Image)
	}
	if got := NormalizeCaptchaSetting(CaptchaSetting{Provider: "turnstile"}).Provider; got != constants.CaptchaProviderNone {
		t.Fatalf("unknown provider should fall back to none, got %s", got)
	}
}

func TestValidateCaptchaSetting(t *testing.T) {
	err := ValidateCaptchaSetting(CaptchaSetting{Provider: "none", Scenes: CaptchaSceneSetting{CheckoutSubmit: true}})
	if !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected config invalid, got %v", err)
	}
	if err := ValidateCaptchaSetting(CaptchaSetting{Provider: "image", Scenes: CaptchaSceneSetting{CheckoutSubmit: true}}); err != nil {
		t.Fatalf("image provider with scene should be valid, got %v", err)
	}
}

func TestCaptchaVerifySceneDisabled(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "none"})
	if err := svc.Verify(constants.CaptchaSceneCheckoutSubmit, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("generate without image provider should fail, got %v", err)
	}
}

func TestCaptchaVerifyImage(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "image",
		Scenes:   config.CaptchaSceneConfig{CheckoutSubmit: true},
	})
	store := base64Captcha.NewMemoryStore(100, time.Minute)
	svc.useStore(store)

	if err := svc.Verify(constants.CaptchaSceneCheckoutSubmit, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got %v", err)
	}
	if err := store.Set("cap-1", "ab12"); err != nil {
		t.Fatalf("store set failed: %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneCheckoutSubmit, CaptchaVerifyPayload{CaptchaID: "cap-1", CaptchaCode: "zzzz"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected captcha invalid, got %v", err)
	}
	if err := store.Set("cap-2", "ab12"); err != nil {
		t.Fatalf("store set failed: %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneCheckoutSubmit, CaptchaVerifyPayload{CaptchaID: "cap-2", CaptchaCode: "ab12"}); err != nil {
		t.Fatalf("expected captcha to pass, got %v", err)
	}

	if err := svc.Verify(constants.CaptchaScenePaymentCreate, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("payment scene is disabled, got %v", err)
	}
}

func TestCaptchaGenerateImageChallenge(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "image"})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
}

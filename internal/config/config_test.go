package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Cart.StorageKey != "fastbite-cart" {
		t.Fatalf("unexpected storage key: %s", cfg.Cart.StorageKey)
	}
	if cfg.Cart.Storage != "database" {
		t.Fatalf("unexpected cart storage: %s", cfg.Cart.Storage)
	}
	if cfg.Checkout.WhatsAppNumber != "22953305896" {
		t.Fatalf("unexpected whatsapp number: %s", cfg.Checkout.WhatsAppNumber)
	}
	if cfg.Payment.FedaPay.Currency != "XOF" || !cfg.Payment.FedaPay.Simulation {
		t.Fatalf("unexpected fedapay defaults: %+v", cfg.Payment.FedaPay)
	}
	if cfg.Payment.FedaPay.Breaker.MaxFailures != 5 {
		t.Fatalf("unexpected breaker defaults: %+v", cfg.Payment.FedaPay.Breaker)
	}
	if cfg.Log.Filename != "snaki.log" || cfg.Log.Console {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Queue.Queues["default"] != 1 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
}

func TestDecodeOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("cart.storage", "redis")
	v.Set("cart.ttl_hours", 48)
	v.Set("checkout.currency_label", "FCFA")

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Cart.Storage != "redis" || cfg.Cart.TTLHours != 48 {
		t.Fatalf("unexpected cart config: %+v", cfg.Cart)
	}
	if cfg.Checkout.CurrencyLabel != "FCFA" {
		t.Fatalf("unexpected currency label: %s", cfg.Checkout.CurrencyLabel)
	}
}

func TestLogConfigToLoggerOptions(t *testing.T) {
	opts := LogConfig{Dir: "/tmp/logs", Filename: "a.log", MaxSizeMB: 3, Compress: true, Level: "warn", Console: true}.ToLoggerOptions()
	if opts.Dir != "/tmp/logs" || opts.Filename != "a.log" || opts.MaxSizeMB != 3 || !opts.Compress {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
	if opts.Level != "warn" || !opts.Console {
		t.Fatalf("level and console should be forwarded: %+v", opts)
	}
}

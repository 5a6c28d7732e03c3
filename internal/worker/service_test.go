package worker

import (
	"context"
	"testing"

	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/provider"
)

func TestNewServiceRequiresQueue(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	if _, err := NewService(nil, consumer); err == nil {
		t.Fatalf("nil queue config should fail")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: false}, consumer); err == nil {
		t.Fatalf("disabled queue should fail")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should fail")
	}
}

func TestServiceNotInitialized(t *testing.T) {
	var svc *Service
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("nil service should not start")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("nil service stop should be no-op, got %v", err)
	}
	if (&Service{}).Name() != "worker" {
		t.Fatalf("unexpected service name")
	}
}

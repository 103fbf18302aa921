package health_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/askarbek/carvault/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(_ context.Context) error { return p.err }

func newChecker(p *fakePinger) *health.Checker {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return health.NewChecker(p, logger, prometheus.NewRegistry())
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c := newChecker(&fakePinger{err: errors.New("db down")})

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
}

func TestReadiness_DBUp_ReportsUp(t *testing.T) {
	c := newChecker(&fakePinger{})

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
	if result.Checks["postgres"].Status != "up" {
		t.Errorf("postgres check = %q, want up", result.Checks["postgres"].Status)
	}
}

func TestReadiness_DBDown_ReportsDown(t *testing.T) {
	c := newChecker(&fakePinger{err: errors.New("connection refused")})

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Errorf("status = %q, want down", result.Status)
	}
	check := result.Checks["postgres"]
	if check.Status != "down" || check.Error == "" {
		t.Errorf("postgres check = %+v, want down with error", check)
	}
}

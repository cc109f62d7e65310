package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/241luca/soccer-manager/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func Test_Helpers_Levels(t *testing.T) {
	tests := []struct {
		name  string
		emit  func()
		level string
	}{
		{name: "info", emit: func() { Info("saved", map[string]interface{}{"id": 1}) }, level: "info"},
		{name: "warn", emit: func() { Warn("ignored", map[string]interface{}{"id": 1}) }, level: "warn"},
		{name: "error", emit: func() { Error("failed", errors.New("boom")) }, level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			zerolog.SetGlobalLevel(zerolog.DebugLevel)

			tt.emit()

			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
		})
	}
}

func Test_Init_Level(t *testing.T) {
	buf := capture(t)

	Init("production", "warn")
	Info("hidden", nil)
	Warn("shown", map[string]interface{}{"key": "value"})

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func Test_Init_BadLevelFallsBackToInfo(t *testing.T) {
	capture(t)

	Init("production", "loud")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

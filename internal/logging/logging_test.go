package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oncorisk-client/internal/domain"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.LoggingConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{
			name:      "Debug JSON",
			config:    domain.LoggingConfig{Level: "debug", Format: "json"},
			wantLevel: logrus.DebugLevel,
			wantJSON:  true,
		},
		{
			name:      "Warn text",
			config:    domain.LoggingConfig{Level: "warn", Format: "text"},
			wantLevel: logrus.WarnLevel,
			wantJSON:  false,
		},
		{
			name:      "Bad level falls back to info",
			config:    domain.LoggingConfig{Level: "verbose", Format: "json"},
			wantLevel: logrus.InfoLevel,
			wantJSON:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())

			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

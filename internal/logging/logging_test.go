package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/robert-at-pretension-io/reggen/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		level   logrus.Level
		wantErr bool
	}{
		{"defaults", config.LogConfig{}, logrus.InfoLevel, false},
		{"debug_json", config.LogConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, false},
		{"upper_format", config.LogConfig{Level: "warn", Format: "TEXT"}, logrus.WarnLevel, false},
		{"bad_level", config.LogConfig{Level: "loud"}, 0, true},
		{"bad_format", config.LogConfig{Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg, &bytes.Buffer{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if log.GetLevel() != tt.level {
				t.Fatalf("level = %v, want %v", log.GetLevel(), tt.level)
			}
		})
	}
}

func TestJSONFormatWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Format: FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.WithField("block", "uart").Info("generated")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["block"] != "uart" || entry["msg"] != "generated" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

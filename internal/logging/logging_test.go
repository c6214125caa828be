// ABOUTME: Tests for log level parsing.
package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.WarnLevel)

	tests := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{"debug", logrus.DebugLevel, false},
		{"INFO", logrus.InfoLevel, false},
		{"warning", logrus.WarnLevel, false},
		{"", logrus.WarnLevel, false},
		{"error", logrus.ErrorLevel, false},
		{"fatal", logrus.FatalLevel, false},
		{"verbose", logrus.WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			Log.SetLevel(logrus.WarnLevel)
			err := SetLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if Log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Log.GetLevel(), tt.want)
			}
		})
	}
}

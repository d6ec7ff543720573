package keyboard_test

import (
	"strings"
	"testing"

	"github.com/winterfair/fairbot/internal/bot/keyboard"
)

func TestEncodeCallback(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		data      string
		want      string
		wantError bool
	}{
		{
			name:   "with data",
			prefix: "pav_view",
			data:   "3",
			want:   "pav_view:3",
		},
		{
			name:   "without data",
			prefix: "menu",
			data:   "",
			want:   "menu",
		},
		{
			name:      "exceeds limit",
			prefix:    strings.Repeat("x", keyboard.CallbackDataLimitBytes+1),
			data:      "",
			wantError: true,
		},
		{
			name:      "payload pushes over limit",
			prefix:    strings.Repeat("y", keyboard.CallbackDataLimitBytes-2),
			data:      "42",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyboard.EncodeCallback(tt.prefix, tt.data)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("EncodeCallback() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantData   string
		wantErr    bool
	}{
		{
			name:       "prefix and data",
			input:      "pav_buy:5",
			wantPrefix: "pav_buy",
			wantData:   "5",
		},
		{
			name:       "only prefix",
			input:      "map",
			wantPrefix: "map",
			wantData:   "",
		},
		{
			name:       "multiple separators",
			input:      "task_sequence:21:2:wrap",
			wantPrefix: "task_sequence",
			wantData:   "21:2:wrap",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, data, err := keyboard.DecodeCallback(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if prefix != tt.wantPrefix || data != tt.wantData {
				t.Errorf("DecodeCallback() = (%q, %q), want (%q, %q)", prefix, data, tt.wantPrefix, tt.wantData)
			}
		})
	}
}

package services

import (
	"errors"
	"testing"
)

func TestVerifyWebhook(t *testing.T) {
	tests := []struct {
		name          string
		mode          string
		token         string
		challenge     string
		verifySecret  string
		wantChallenge string
		wantErr       error
	}{
		{
			name:          "valid subscription",
			mode:          "subscribe",
			token:         "my-secret",
			challenge:     "123456",
			verifySecret:  "my-secret",
			wantChallenge: "123456",
		},
		{
			name:         "missing mode",
			token:        "my-secret",
			challenge:    "123456",
			verifySecret: "my-secret",
			wantErr:      ErrVerificationBadRequest,
		},
		{
			name:         "missing token",
			mode:         "subscribe",
			challenge:    "123456",
			verifySecret: "my-secret",
			wantErr:      ErrVerificationBadRequest,
		},
		{
			name:         "token mismatch",
			mode:         "subscribe",
			token:        "wrong",
			challenge:    "123456",
			verifySecret: "my-secret",
			wantErr:      ErrVerificationForbidden,
		},
		{
			name:         "unknown mode",
			mode:         "unsubscribe",
			token:        "my-secret",
			challenge:    "123456",
			verifySecret: "my-secret",
			wantErr:      ErrVerificationForbidden,
		},
		{
			name:      "unconfigured secret rejects everything",
			mode:      "subscribe",
			token:     "anything",
			challenge: "123456",
			wantErr:   ErrVerificationForbidden,
		},
		{
			name:          "empty challenge echoes empty",
			mode:          "subscribe",
			token:         "my-secret",
			verifySecret:  "my-secret",
			wantChallenge: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyWebhook(tt.mode, tt.token, tt.challenge, tt.verifySecret)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("VerifyWebhook() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.wantChallenge {
				t.Errorf("VerifyWebhook() = %q, want %q", got, tt.wantChallenge)
			}
		})
	}
}

//go:build !gcloud

package config

import (
	"errors"
	"testing"
)

func TestTaskQueueConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "notifications disabled", url: ""},
		{name: "http url", url: "http://localhost:8081"},
		{name: "missing scheme", url: "localhost:8081", wantErr: true},
		{name: "unsupported scheme", url: "ftp://tasks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &TaskQueueConfig{PrimindTasksURL: tt.url}
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTasksURL) {
				t.Errorf("error = %v, want %v", err, ErrInvalidTasksURL)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	cfg := &Config{
		Redis:     &RedisConfig{},
		TaskQueue: TaskQueueConfig{PrimindTasksURL: "not a url"},
	}

	err := ValidateForRun(cfg)
	if !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("error = %v, want %v", err, ErrRedisAddrMissing)
	}
	if !errors.Is(err, ErrInvalidTasksURL) {
		t.Errorf("error = %v, want %v", err, ErrInvalidTasksURL)
	}
}

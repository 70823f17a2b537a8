package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Auth:     AuthConfig{JWTSecret: "test-secret-key-for-unit-testing"},
		Training: TrainingConfig{HistoryLimit: 10, MaxHistoryLimit: 100},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应校验失败")
	}
}

func TestValidate_StorageWithoutBucket(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("启用存储但缺少 bucket 应校验失败")
	}
}

func TestValidate_HistoryLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Training.MaxHistoryLimit = 5
	if err := cfg.Validate(); err == nil {
		t.Error("history_limit 大于上限应校验失败")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PROGRESS_AUTH_JWT_SECRET", "env-secret-key-0123456789")
	t.Setenv("PROGRESS_SERVER_PORT", "9090")
	t.Setenv("PROGRESS_RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 Port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("期望 Window=30s，实际=%s", cfg.RateLimit.Window)
	}
	if cfg.Training.HistoryLimit != 10 {
		t.Errorf("期望默认 HistoryLimit=10，实际=%d", cfg.Training.HistoryLimit)
	}
	if cfg.Database.Name != "progress_hub" {
		t.Errorf("期望默认库名 progress_hub，实际=%s", cfg.Database.Name)
	}
}

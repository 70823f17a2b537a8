package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"progress-hub/backend/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化失败: %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Errorf("format=%s 期望启用 debug 级别", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose", Format: "json"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}

func TestNewLogger_FileOutputWithModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", Output: " " + path + " ,"})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	Module(l, "training").Info("周总结已生成", zap.String("plan_id", "p-1"))
	Module(l, "training").Debug("不应输出")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"service":"progress-hub"`, `"logger":"training"`, `"plan_id":"p-1"`, `"ts":`} {
		if !strings.Contains(line, want) {
			t.Errorf("日志应包含 %s，实际: %s", want, line)
		}
	}
	if strings.Contains(line, "不应输出") {
		t.Error("info 级别下不应输出 debug 日志")
	}
}

func TestOutputPaths_Default(t *testing.T) {
	if got := outputPaths(" , "); len(got) != 1 || got[0] != "stdout" {
		t.Errorf("空输出目标应回退为 stdout，实际 %v", got)
	}
	if got := outputPaths("stdout,/var/log/progress.log"); len(got) != 2 {
		t.Errorf("期望 2 个输出目标，实际 %v", got)
	}
}

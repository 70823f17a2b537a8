package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"progress-hub/backend/config"
)

// serviceName 所有日志行携带的 service 字段
const serviceName = "progress-hub"

// NewLogger 构建进程级日志器
//   - format=console: 彩色开发格式，便于本地调试
//   - 其余: JSON，时间字段为 ts (ISO8601)，Warn 以下不附带堆栈
//
// output 为逗号分隔的输出目标（stdout / stderr / 文件路径），缺省为 stdout
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "ts"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.Sampling = nil
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = outputPaths(cfg.Output)

	l, err := zapCfg.Build(
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败 (output=%s): %w", cfg.Output, err)
	}
	return l, nil
}

// Module 返回业务模块子日志器，名称写入 logger 字段（如 training、catalog）
func Module(l *zap.Logger, name string) *zap.Logger {
	return l.Named(name)
}

func outputPaths(output string) []string {
	var paths []string
	for _, p := range strings.Split(output, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return []string{"stdout"}
	}
	return paths
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"progress-hub/backend/config"
	"progress-hub/backend/pkg/jwt"
)

// tokengen 为指定用户签发 Access/Refresh Token（身份由外部系统管理，本服务不存储用户）
func main() {
	var (
		userID     string
		role       string
		configFile string
	)
	flag.StringVar(&userID, "user", "", "user id（缺省时生成随机 UUID）")
	flag.StringVar(&role, "role", "member", "admin | trainer | member")
	flag.StringVar(&configFile, "config", "", "配置文件路径")
	flag.Parse()

	switch role {
	case "admin", "trainer", "member":
	default:
		fmt.Fprintf(os.Stderr, "无效的角色: %s\n", role)
		os.Exit(2)
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	mgr := jwt.NewManager(&cfg.Auth)
	access, err := mgr.GenerateAccessToken(userID, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Access Token 失败: %v\n", err)
		os.Exit(1)
	}
	refresh, err := mgr.GenerateRefreshToken(userID, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Refresh Token 失败: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]interface{}{
		"user_id":       userID,
		"role":          role,
		"access_token":  access,
		"refresh_token": refresh,
		"expires_in":    int(mgr.AccessTokenTTL().Seconds()),
	})
}

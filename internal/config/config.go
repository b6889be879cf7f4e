package config

import "os"

// Configはアプリ全体の設定。DB接続先はinfra/dbが環境変数から直接読む。
type Config struct {
	Port      string // サーバーポート（default 3000）
	PublicDir string // 管理コンソールの静的ファイル置き場
}

// Loadは環境変数から設定を読む。必須項目は無く、全てデフォルトあり。
func Load() Config {
	return Config{
		Port:      getenv("PORT", "3000"),
		PublicDir: getenv("PUBLIC_DIR", "public"),
	}
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

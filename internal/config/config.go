package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig          `mapstructure:"postgres"` // PostgreSQL配置
	Schedule ScheduleConfig          `mapstructure:"schedule"` // 定时任务配置
	Parser   ParserConfig            `mapstructure:"parser"`   // 聚合管线配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 多数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// ScheduleConfig 定时任务配置
type ScheduleConfig struct {
	DailyMatchUpdate string `mapstructure:"daily_match_update"` // 每日刷新Cron表达式
	OldMatchCleanup  string `mapstructure:"old_match_cleanup"`  // 过期清理Cron表达式
	TimezoneOffset   int    `mapstructure:"timezone_offset"`    // 固定时区UTC偏移（小时），默认+3 MSK
}

// ParserConfig 聚合管线配置
type ParserConfig struct {
	CacheTTLMinutes   int `mapstructure:"cache_ttl_minutes"`   // 内存缓存TTL（分钟）
	MaxMatchesPerDay  int `mapstructure:"max_matches_per_day"` // 每项目每日比赛上限
	PastWindowHours   int `mapstructure:"past_window_hours"`   // 开赛时间合理窗口：过去N小时
	FutureWindowHours int `mapstructure:"future_window_hours"` // 开赛时间合理窗口：未来N小时
}

// SourceConfig 单个数据源的独立配置
type SourceConfig struct {
	BaseURL       string `mapstructure:"base_url"`        // API基础地址
	Timeout       int    `mapstructure:"timeout"`         // 请求超时（秒）
	AuthToken     string `mapstructure:"auth_token"`      // 认证Token（头部形态各源自定）
	Proxy         string `mapstructure:"proxy"`           // 代理地址
	Enabled       bool   `mapstructure:"enabled"`         // 是否启用
	MinIntervalMS int    `mapstructure:"min_interval_ms"` // 相邻调用最小间隔（毫秒），对应免费额度
}

// MinInterval 返回该源的最小调用间隔
func (s SourceConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	envKeys := map[string]string{
		"footballdata": "FOOTBALL_DATA_API_KEY",
		"apisports":    "API_SPORTS_KEY",
		"pandascore":   "PANDASCORE_TOKEN",
		"theoddsapi":   "ODDS_API_KEY",
	}
	for name, envKey := range envKeys {
		src, ok := cfg.Sources[name]
		if !ok {
			continue
		}
		if v := os.Getenv(envKey); v != "" {
			src.AuthToken = v
		}
		cfg.Sources[name] = src
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}

// applyDefaults 关键参数兜底，防止配置缺项导致管线行为异常
func applyDefaults(cfg *Config) {
	if cfg.Parser.CacheTTLMinutes <= 0 {
		cfg.Parser.CacheTTLMinutes = 30
	}
	if cfg.Parser.MaxMatchesPerDay <= 0 {
		cfg.Parser.MaxMatchesPerDay = 2
	}
	if cfg.Parser.PastWindowHours <= 0 {
		cfg.Parser.PastWindowHours = 6
	}
	if cfg.Parser.FutureWindowHours <= 0 {
		cfg.Parser.FutureWindowHours = 48
	}
	if cfg.Schedule.DailyMatchUpdate == "" {
		cfg.Schedule.DailyMatchUpdate = "0 7 * * *"
	}
	if cfg.Schedule.OldMatchCleanup == "" {
		cfg.Schedule.OldMatchCleanup = "0 0 * * *"
	}
	if cfg.Schedule.TimezoneOffset == 0 {
		cfg.Schedule.TimezoneOffset = 3
	}
}

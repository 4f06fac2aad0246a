package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// PlaceholderRemoteURL 示例配置中的占位地址，视为未配置
const PlaceholderRemoteURL = "YOUR_DATABASE_URL"

// Config 应用配置
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Remote   RemoteConfig
	Database DatabaseConfig
	Local    LocalConfig
	Redis    RedisConfig
	Log      LogConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// RemoteConfig 远程数据库（两项都配置才启用远程模式）
type RemoteConfig struct {
	URL string // postgres 连接地址
	Key string // 访问密钥，作为连接密码注入
}

// DatabaseConfig 远程连接池配置
type DatabaseConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// LocalConfig 本地模式存储配置
type LocalConfig struct {
	Driver    string // sqlite, redis, memory
	Path      string // sqlite 文件路径
	KeyPrefix string // redis 键前缀
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig 日志配置
type LogConfig struct {
	Level string
}

// Load 加载配置
// path 为空或文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("FRACTOOLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// RemoteEnabled 远程地址与密钥都已配置且地址不是占位符
func (c *RemoteConfig) RemoteEnabled() bool {
	endpoint := strings.TrimSpace(c.URL)
	return endpoint != "" && strings.TrimSpace(c.Key) != "" && endpoint != PlaceholderRemoteURL
}

// GetDSN 生成带密钥的连接串
// URL 形式（postgres://）把密钥写入用户密码，key=value 形式追加 password 项
func (c *RemoteConfig) GetDSN() (string, error) {
	raw := strings.TrimSpace(c.URL)
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid remote url: %w", err)
		}
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, c.Key)
		return u.String(), nil
	}
	return fmt.Sprintf("%s password=%s", raw, c.Key), nil
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr 获取 Redis 地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "fractools")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	// Remote
	v.SetDefault("remote.url", "")
	v.SetDefault("remote.key", "")

	// Database
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.maxLifetime", 300)

	// Local
	v.SetDefault("local.driver", "sqlite")
	v.SetDefault("local.path", "./data/fractools.db")
	v.SetDefault("local.keyPrefix", "fractools:")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log
	v.SetDefault("log.level", "info")
}

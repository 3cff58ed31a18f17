package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 存储驱动
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverLocal    = "local"
)

// 本地回退存储后端
const (
	LocalBackendBolt   = "bolt"
	LocalBackendRedis  = "redis"
	LocalBackendMemory = "memory"
)

// Collections 系统中的全部逻辑集合
var Collections = []string{"students", "courses", "tasks", "grades", "messages"}

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"db"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BodyLimit int64      `mapstructure:"body_limit"`
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StoreConfig 集合存储配置
// Collections 为按集合覆盖的驱动，未覆盖的集合使用 Driver
type StoreConfig struct {
	Driver      string            `mapstructure:"driver"`
	Collections map[string]string `mapstructure:"collections"`
	Local       LocalStoreConfig  `mapstructure:"local"`
}

// DriverFor 返回指定集合实际使用的驱动
func (c *StoreConfig) DriverFor(collection string) string {
	if d, ok := c.Collections[collection]; ok && d != "" {
		return d
	}
	return c.Driver
}

// Uses 判断是否有任一集合使用该驱动
func (c *StoreConfig) Uses(driver string) bool {
	for _, name := range Collections {
		if c.DriverFor(name) == driver {
			return true
		}
	}
	return false
}

// LocalStoreConfig 本地回退存储（每个集合一个 JSON 数组）
type LocalStoreConfig struct {
	Backend   string `mapstructure:"backend"`
	BoltPath  string `mapstructure:"bolt_path"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// MongoConfig MongoDB 文档库配置
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig Redis 配置（本地回退存储的共享后端）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"`
	OutputPaths []string `mapstructure:"output_paths"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值；.env 文件（若存在）先被载入环境变量
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("读取 .env 失败: %w", err)
		}
	}

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.collections", map[string]string{})
	v.SetDefault("store.local.backend", LocalBackendBolt)
	v.SetDefault("store.local.bolt_path", "data/local.db")
	v.SetDefault("store.local.key_prefix", "college:")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "college_admin")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "college_admin")
	v.SetDefault("mongo.timeout", "10s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_paths", []string{"stdout"})

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("COLLEGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	for _, name := range Collections {
		switch d := c.Store.DriverFor(name); d {
		case DriverMemory, DriverPostgres, DriverMongo, DriverLocal:
		default:
			return fmt.Errorf("配置校验失败: 集合 %s 的存储驱动 %q 无效", name, d)
		}
	}
	for name := range c.Store.Collections {
		if !isCollection(name) {
			return fmt.Errorf("配置校验失败: 未知集合 %q", name)
		}
	}

	if c.Store.Uses(DriverPostgres) && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("配置校验失败: 使用 postgres 驱动时 db.host 与 db.name 不能为空")
	}
	if c.Store.Uses(DriverMongo) && (c.Mongo.URI == "" || c.Mongo.Database == "") {
		return fmt.Errorf("配置校验失败: 使用 mongo 驱动时 mongo.uri 与 mongo.database 不能为空")
	}
	if c.Store.Uses(DriverLocal) {
		switch c.Store.Local.Backend {
		case LocalBackendBolt:
			if c.Store.Local.BoltPath == "" {
				return fmt.Errorf("配置校验失败: store.local.bolt_path 不能为空")
			}
		case LocalBackendRedis:
			if c.Redis.Addr == "" {
				return fmt.Errorf("配置校验失败: 使用 redis 本地存储时 redis.addr 不能为空")
			}
		case LocalBackendMemory:
		default:
			return fmt.Errorf("配置校验失败: store.local.backend %q 无效", c.Store.Local.Backend)
		}
	}
	return nil
}

func isCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "QUILL"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	LogFormat   string
	LogLevel    string

	StoreDriver   string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	ImageStoreDriver string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3PublicBaseURL  string
	S3KeyPrefix      string
	S3PathStyle      bool
	S3AccessKeyID    string
	S3SecretKey      string

	UploadDir      string
	UploadMaxBytes int64

	PostsPageSize          int
	DefaultProfilePhotoURL string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	// TrustedProxies are the peers allowed to name the client through
	// X-Forwarded-For. Empty means every request is keyed on its peer.
	TrustedProxies []netip.Prefix
}

var defaults = map[string]any{
	"service-name":              "quill",
	"http-port":                 "8080",
	"log-format":                "json",
	"log-level":                 "info",
	"store-driver":              DriverMemory,
	"mongo-uri":                 "mongodb://localhost:27017",
	"mongo-database":            "quill",
	"token-ttl":                 time.Duration(0),
	"bcrypt-cost":               10,
	"image-store-driver":        DriverMemory,
	"s3-region":                 "us-east-1",
	"s3-key-prefix":             "images/",
	"s3-path-style":             false,
	"upload-dir":                "",
	"upload-max-bytes":          int64(1 << 20),
	"posts-page-size":           3,
	"default-profile-photo-url": "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png",
	"auth-rate-limit-rps":       5.0,
	"auth-rate-limit-burst":     10,
}

// NewViper returns a viper instance reading QUILL_* environment variables,
// where QUILL_HTTP_PORT maps to the "http-port" key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads the optional config file named by the "config" key and resolves
// every setting. Flags bound to v take precedence over the environment.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		ServiceName: v.GetString("service-name"),
		HTTPPort:    v.GetString("http-port"),
		LogFormat:   strings.ToLower(v.GetString("log-format")),
		LogLevel:    strings.ToLower(v.GetString("log-level")),

		StoreDriver:   strings.ToLower(v.GetString("store-driver")),
		PostgresDSN:   v.GetString("postgres-dsn"),
		MongoURI:      v.GetString("mongo-uri"),
		MongoDatabase: v.GetString("mongo-database"),

		JWTSecret:  v.GetString("jwt-secret"),
		TokenTTL:   v.GetDuration("token-ttl"),
		BcryptCost: v.GetInt("bcrypt-cost"),

		ImageStoreDriver: strings.ToLower(v.GetString("image-store-driver")),
		S3Bucket:         v.GetString("s3-bucket"),
		S3Region:         v.GetString("s3-region"),
		S3Endpoint:       v.GetString("s3-endpoint"),
		S3PublicBaseURL:  v.GetString("s3-public-base-url"),
		S3KeyPrefix:      v.GetString("s3-key-prefix"),
		S3PathStyle:      v.GetBool("s3-path-style"),
		S3AccessKeyID:    v.GetString("s3-access-key-id"),
		S3SecretKey:      v.GetString("s3-secret-access-key"),

		UploadDir:      v.GetString("upload-dir"),
		UploadMaxBytes: v.GetInt64("upload-max-bytes"),

		PostsPageSize:          v.GetInt("posts-page-size"),
		DefaultProfilePhotoURL: v.GetString("default-profile-photo-url"),

		AuthRateLimitRPS:   v.GetFloat64("auth-rate-limit-rps"),
		AuthRateLimitBurst: v.GetInt("auth-rate-limit-burst"),
	}
	proxies, err := ParsePrefixes(v.GetStringSlice("trusted-proxies"))
	if err != nil {
		return Config{}, err
	}
	cfg.TrustedProxies = proxies
	return cfg, cfg.Validate()
}

// Validate rejects configurations the process cannot start with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, "jwt-secret is required")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			problems = append(problems, "postgres-dsn is required for the postgres store driver")
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			problems = append(problems, "mongo-uri and mongo-database are required for the mongo store driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store-driver %q", c.StoreDriver))
	}
	switch c.ImageStoreDriver {
	case DriverMemory:
	case DriverS3:
		if c.S3Bucket == "" {
			problems = append(problems, "s3-bucket is required for the s3 image store driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown image-store-driver %q", c.ImageStoreDriver))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("unknown log-format %q", c.LogFormat))
	}
	if c.UploadMaxBytes <= 0 {
		problems = append(problems, "upload-max-bytes must be positive")
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// ParsePrefixes accepts CIDR ranges or bare addresses, separated by commas or
// given as separate values. A bare address becomes a single-host prefix.
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if strings.Contains(item, "/") {
				prefix, err := netip.ParsePrefix(item)
				if err != nil {
					return nil, fmt.Errorf("invalid trusted-proxies entry %q: %w", item, err)
				}
				prefixes = append(prefixes, prefix.Masked())
				continue
			}
			addr, err := netip.ParseAddr(item)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted-proxies entry %q: %w", item, err)
			}
			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes, nil
}

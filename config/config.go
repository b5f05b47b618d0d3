package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
	utils "github.com/phillip/charity-admin-go/utils"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	StoreDriver string // mongo | memory
	MongoClient *mongo.Client

	UploadProvider   string // cloudinary | s3
	UploadRootFolder string
	Cloudinary       CloudinaryConfig
	S3               uploads.S3Config

	CORSOrigins      []string
	AdminJWTSecret   string
	StrictCategories bool

	Mail utils.MailConfig

	LogLevel string
	GinMode  string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "charity"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "mongo")),

		UploadProvider:   strings.ToLower(getEnv("UPLOAD_PROVIDER", "cloudinary")),
		UploadRootFolder: getEnv("UPLOAD_ROOT_FOLDER", "charity"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		S3: uploads.S3Config{
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Prefix:    os.Getenv("S3_PREFIX"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
			AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),

		Mail: utils.MailConfig{
			APIURL: getEnv("ZEPTO_API_URL", "https://api.zeptomail.com/v1.1/email"),
			APIKey: os.Getenv("ZEPTO_API_KEY"),
			From:   os.Getenv("EMAIL_FROM"),
			To:     os.Getenv("EMAIL_NOTIFY_TO"),
			ToName: getEnv("EMAIL_TO_NAME", "Admin"),
		},

		LogLevel: getEnv("LOG_LEVEL", "info"),
		GinMode:  getEnv("GIN_MODE", "release"),
	}

	strict, err := strconv.ParseBool(getEnv("STRICT_CATEGORIES", "false"))
	if err != nil {
		return nil, fmt.Errorf("STRICT_CATEGORIES: %w", err)
	}
	cfg.StrictCategories = strict

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be mongo or memory, got %q", c.StoreDriver)
	}
	switch c.UploadProvider {
	case "cloudinary", "s3":
	default:
		return fmt.Errorf("UPLOAD_PROVIDER must be cloudinary or s3, got %q", c.UploadProvider)
	}
	return nil
}

// Connect opens the Mongo client unless the memory driver is selected.
func (c *Config) Connect(ctx context.Context) error {
	if c.StoreDriver == "memory" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}
	c.MongoClient = client
	return nil
}

func (c *Config) Disconnect(ctx context.Context) error {
	if c.MongoClient == nil {
		return nil
	}
	return c.MongoClient.Disconnect(ctx)
}

// Backend is where entity collections live: the configured database, or
// process memory when no client is connected.
func (c *Config) Backend() *store.Backend {
	if c.MongoClient == nil {
		return &store.Backend{}
	}
	return &store.Backend{DB: c.MongoClient.Database(c.DBName)}
}

// NewUploadProvider builds the configured media provider.
func (c *Config) NewUploadProvider(ctx context.Context) (uploads.Provider, error) {
	switch c.UploadProvider {
	case "s3":
		if c.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 provider needs S3_BUCKET")
		}
		cfg := c.S3
		if cfg.Prefix == "" {
			cfg.Prefix = c.UploadRootFolder
		}
		return uploads.NewS3(ctx, cfg)
	default:
		cc := c.Cloudinary
		if cc.CloudName == "" || cc.APIKey == "" || cc.APISecret == "" {
			return nil, fmt.Errorf("cloudinary provider needs CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
		return uploads.NewCloudinary(c.Cloudinary.CloudName, c.Cloudinary.APIKey, c.Cloudinary.APISecret, c.UploadRootFolder)
	}
}

// NewLogger builds a JSON logger in release mode and a console logger otherwise.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var zc zap.Config
	if c.GinMode == "release" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

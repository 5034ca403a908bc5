package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address       string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"INFO"`
	MongoURI      string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"fashionshop"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTTTL        time.Duration `env:"JWT_TTL" envDefault:"24h"`
	OTPTTL        time.Duration `env:"OTP_TTL" envDefault:"5m"`
	VNPTmnCode    string        `env:"VNP_TMN_CODE"`
	VNPHashSecret string        `env:"VNP_HASH_SECRET"`
	VNPURL        string        `env:"VNP_URL" envDefault:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	VNPReturnURL  string        `env:"VNP_RETURN_URL"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	mongoURI := flag.String("m", cfg.MongoURI, "MongoDB connection string")
	mongoDatabase := flag.String("n", cfg.MongoDatabase, "MongoDB database name")
	redisAddr := flag.String("r", cfg.RedisAddr, "Redis address for the OTP store")
	jwtTTL := flag.Duration("t", cfg.JWTTTL, "TTL for JWT token(e.g. 24h; 30m )")
	otpTTL := flag.Duration("o", cfg.OTPTTL, "TTL for one-time passwords")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.MongoURI = *mongoURI
	cfg.MongoDatabase = *mongoDatabase
	cfg.RedisAddr = *redisAddr
	cfg.JWTTTL = *jwtTTL
	cfg.OTPTTL = *otpTTL

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set")
	}
	if cfg.VNPTmnCode == "" || cfg.VNPHashSecret == "" {
		return nil, fmt.Errorf("ENV VNP_TMN_CODE and VNP_HASH_SECRET must be set")
	}
	if cfg.VNPReturnURL == "" {
		return nil, fmt.Errorf("ENV VNP_RETURN_URL must be set")
	}

	return cfg, nil
}

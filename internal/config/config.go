package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr          string
	SearchTimeout       time.Duration
	ClientTimeout       time.Duration
	CacheTTL            time.Duration
	CORSAllowedOrigins  []string
	JWTSecret           string
	JWTUser             string
	JWTPassword         string
	TLSCertFile         string
	TLSKeyFile          string
	AmadeusURL          string
	AmadeusClientID     string
	AmadeusClientSecret string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("search_timeout", "10s")
	v.SetDefault("client_timeout", "15s")
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")

	v.SetDefault("amadeus_url", "https://test.api.amadeus.com")

	if path := os.Getenv("GATEWAY_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/travel-gateway") // add the container path
	}

	if err := v.ReadInConfig(); err != nil {
		log.Printf("no config file found, using defaults + env vars: %v", err)
	}

	v.AutomaticEnv()

	to, err := time.ParseDuration(v.GetString("search_timeout"))
	if err != nil {
		log.Fatalf("bad search_timeout: %v", err)
	}
	ct, err := time.ParseDuration(v.GetString("client_timeout"))
	if err != nil {
		log.Fatalf("bad client_timeout: %v", err)
	}
	ttl, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		log.Fatalf("bad cache_ttl: %v", err)
	}

	id := v.GetString("amadeus_clientid")
	secret := v.GetString("amadeus_clientsecret")
	if id == "" || secret == "" {
		log.Fatal("amadeus_clientid and amadeus_clientsecret are required")
	}

	return &Config{
		ListenAddr:          v.GetString("listen_addr"),
		SearchTimeout:       to,
		ClientTimeout:       ct,
		CacheTTL:            ttl,
		CORSAllowedOrigins:  v.GetStringSlice("cors_allowed_origins"),
		JWTSecret:           v.GetString("jwt_secret"),
		JWTUser:             v.GetString("auth_user"),
		JWTPassword:         v.GetString("auth_pass"),
		TLSCertFile:         os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:          os.Getenv("TLS_KEY_FILE"),
		AmadeusURL:          v.GetString("amadeus_url"),
		AmadeusClientID:     id,
		AmadeusClientSecret: secret,
	}
}

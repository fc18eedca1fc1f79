package config

import "os"

// Config collects the environment the server needs. Every value has a
// development default.
type Config struct {
	HTTPAddr     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPass       string
	DBName       string
	RedisAddr    string
	JWTSecret    string
	KafkaTopic   string
	KafkaGroupID string
}

func Load() Config {
	return Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "root"),
		DBPass:       getEnv("DB_PASS", ""),
		DBName:       getEnv("DB_NAME", "marketplace"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "marketplace-events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "marketplace-backend"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv pulls .env into the process environment. Missing file is fine in
// deployed environments where variables come from the platform.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment")
	}
}

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func JWTSecret() []byte {
	return []byte(Getenv("JWT_SEED", "evofest-dev-secret"))
}

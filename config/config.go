package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when one exists. In deployed environments the
// variables are set directly and a missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string
	for _, key := range []string{"JWT_SECRET", "DATABASE_URL"} {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables degrade individual features; warn but start.
	optional := map[string]string{
		"FIREBASE_STORAGE_BUCKET":        "file uploads will fail",
		"GOOGLE_APPLICATION_CREDENTIALS": "Firebase features may not work",
		"FRONTEND_URL":                   "CORS may not work correctly",
		"FRANCHISE_URL":                  "invitation links will be incomplete",
		"SMTP_HOST":                      "email notifications will not work",
		"SMTP_PORT":                      "email notifications will not work",
		"SMTP_FROM":                      "email notifications will not work",
	}
	for key, consequence := range optional {
		if os.Getenv(key) == "" {
			log.Printf("WARNING: %s not set - %s", key, consequence)
		}
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

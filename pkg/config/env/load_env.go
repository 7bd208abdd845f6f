package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file. The path can be
// overridden with the ENV_PATH environment variable. A missing file is not
// fatal: deployed environments configure the process directly.
func LoadDotEnv(defaultPath string) {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		slog.Info("Skipping .env ...", "path", envPath, "error", err)
	}
}

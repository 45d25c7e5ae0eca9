package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/learnnest.db\nJWT_SECRET=%s\nMINIO_ENDPOINT=\nMINIO_ACCESS_KEY=\nMINIO_SECRET_KEY=\nMINIO_BUCKET=learnnest-files\n"

// LoadConfigFile bootstraps and applies ~/.config/learnnest/config.ini.
// A fresh install gets a config file with a generated JWT secret so the server
// is usable without any manual setup.
func LoadConfigFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "learnnest", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	if _, err := configFile.WriteString(fmt.Sprintf(defaultConfigTemplate, uuid.New().String())); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

// fileValue returns the config-file value for key, or "" when the key is
// absent, blank, or shadowed by an environment variable of the same name.
// Environment always wins over the file.
func fileValue(configMap map[string]string, key string) string {
	if os.Getenv(key) != "" {
		return ""
	}
	configValue, ok := configMap[key]
	if !ok {
		return ""
	}
	return configValue
}

func applyConfigMap(configMap map[string]string) error {
	if configValue := fileValue(configMap, "SESSION_SECRET"); configValue != "" {
		SessionSecret = configValue
	}

	if configValue := fileValue(configMap, "SQLITE_PATH"); configValue != "" {
		SQLitePath = configValue
	}

	if configValue := fileValue(configMap, "JWT_SECRET"); configValue != "" {
		JWTSecret = configValue
	}

	if configValue := fileValue(configMap, "JWT_REFRESH_SECRET"); configValue != "" {
		JWTRefreshSecret = configValue
	}

	if configValue := fileValue(configMap, "PORT"); configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	if configValue := fileValue(configMap, "MINIO_ENDPOINT"); configValue != "" {
		MinIOEndpoint = configValue
	}
	if configValue := fileValue(configMap, "MINIO_ACCESS_KEY"); configValue != "" {
		MinIOAccessKey = configValue
	}
	if configValue := fileValue(configMap, "MINIO_SECRET_KEY"); configValue != "" {
		MinIOSecretKey = configValue
	}
	if configValue := fileValue(configMap, "MINIO_BUCKET"); configValue != "" {
		MinIOBucket = configValue
	}
	if configValue := fileValue(configMap, "MINIO_USE_SSL"); configValue != "" {
		useSSL, err := strconv.ParseBool(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for MINIO_USE_SSL: %w", err)
		}
		MinIOUseSSL = useSSL
	}

	// Refresh tokens sign with the access secret unless a dedicated one is set.
	if JWTRefreshSecret == "" {
		JWTRefreshSecret = JWTSecret
	}

	return nil
}

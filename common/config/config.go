package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/rainbow-me/logredirect/common/env"
	"github.com/rainbow-me/logredirect/common/logger"
)

const (
	fileFormat     = ".yaml"        // File format of the config files
	relativePath   = "./cmd/config" // Default relative path for config files (base path)
	binaryPath     = "./config"     // Path for binary build config (base path)
	binaryDir      = "target"       // Directory name for the binary target
	binaryInDocker = "app"          // Directory name for Docker deployment
	envVarPrefix   = "env://"       // Prefix for environment variables
)

// YamlReadConfig holds the configuration paths (relative and absolute).
type YamlReadConfig struct {
	RelativePath string // Path relative to the current directory
	AbsolutePath string // Absolute path if provided
	DynamicDir   string // Optional dynamic directory
}

// ReadConfigOption is a function signature used to set configuration options.
type ReadConfigOption func(*YamlReadConfig)

// WithRelativePath sets a relative path for the config file.
func WithRelativePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.RelativePath = path
	}
}

// WithAbsolutePath sets an absolute path for the config file.
func WithAbsolutePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.AbsolutePath = path
	}
}

// WithDynamicDir allows setting a dynamic subdirectory for the configuration path.
func WithDynamicDir(dynamicDir string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.DynamicDir = dynamicDir
	}
}

// LoadConfig reads <dir>/<ENVIRONMENT>.yaml into conf. Environment variables
// override file values (dots become underscores) and string values of the
// form env://NAME are replaced by $NAME.
func LoadConfig(conf any, log *logger.Logger, options ...ReadConfigOption) error {
	if log == nil {
		log = logger.Instance()
	}

	filePath, err := configFilePath(log, options...)
	if err != nil {
		return err
	}
	log.Info("Reading config file from path", logger.String("path", filePath))

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read configuration file")
	}

	for _, key := range v.AllKeys() {
		resolveEnvPlaceholder(v, key, log)
	}

	if err := v.Unmarshal(conf); err != nil {
		return errors.Wrap(err, "failed to unmarshal configuration")
	}

	return nil
}

func configFilePath(log *logger.Logger, options ...ReadConfigOption) (string, error) {
	config := &YamlReadConfig{RelativePath: relativePath}
	for _, option := range options {
		option(config)
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}

	// running from a build target or a container
	base := filepath.Base(currentDir)
	if config.RelativePath == relativePath && (base == binaryDir || base == binaryInDocker) {
		log.Info("Binary directory", logger.String("directory", currentDir))
		config.RelativePath = binaryPath
	}

	dir := config.RelativePath
	if config.AbsolutePath != "" {
		dir = config.AbsolutePath
	}
	if config.DynamicDir != "" {
		dir = filepath.Join(dir, config.DynamicDir)
	}

	currentEnv, err := env.GetApplicationEnv()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, fmt.Sprintf("%s%s", currentEnv, fileFormat)), nil
}

func resolveEnvPlaceholder(v *viper.Viper, key string, log *logger.Logger) {
	str, ok := v.Get(key).(string)
	if !ok || !strings.HasPrefix(str, envVarPrefix) {
		return
	}

	envVar := strings.TrimPrefix(str, envVarPrefix)
	if envValue, exists := os.LookupEnv(envVar); exists {
		v.Set(key, envValue)
		log.Info("set environment variable", logger.String("variableName", envVar))
		return
	}

	v.Set(key, "")
	log.Warn("environment variable not found", logger.String("variableName", envVar))
}

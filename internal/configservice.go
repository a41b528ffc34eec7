package internal

import (
	"encoding/json"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ConfigService gives access to the application's configuration
type ConfigService interface {
	// Load loads the application config from its default file location
	Load(ctx context.Context) error
	// LoadFromFile loads the configuration from the given JSON file
	LoadFromFile(ctx context.Context, filename string) error
	// GetConfig retuns the current application configuration
	GetConfig(ctx context.Context) models.AppConfig
	// LogLevel returns the configured log level - falling back to info for unknown values
	LogLevel(ctx context.Context) logrus.Level
}

// -- ConfigService implementation -------------------------------------------------------------------------------------

type configService struct {
	configFilename string
	config         *models.AppConfig
}

// NewConfigService creates a new configuration service instance with the given default file name
func NewConfigService(configFilename string) ConfigService {
	return &configService{configFilename: configFilename}
}

// Load loads the application config from its default file location
func (s *configService) Load(ctx context.Context) error {
	return s.LoadFromFile(ctx, s.configFilename)
}

// LoadFromFile loads the configuration from the given JSON file. Fields missing in the file keep their defaults.
// The environment overrides are applied even if the file cannot be read
func (s *configService) LoadFromFile(ctx context.Context, filename string) error {
	logger := ctxhelper.Logger(ctx)
	logger.WithField(log.FldFile, filename).Info("Loading configuration file")
	conf, err := models.GetDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to create default config")
	}
	fileErr := decodeConfigFile(filename, conf)
	if err := env.Parse(conf); err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to apply environment variables")
	}
	s.config = conf
	return fileErr
}

// decodeConfigFile decodes the JSON file over the given config. On failure, the config stays untouched
func decodeConfigFile(filename string, conf *models.AppConfig) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "LoadFromFile: cannot load configuration file")
	}
	defer f.Close()
	tmp := *conf
	if err = json.NewDecoder(f).Decode(&tmp); err != nil {
		return errors.Wrap(err, "LoadFromFile: Failed to decode configuration file")
	}
	*conf = tmp
	return nil
}

// GetConfig retuns the current application configuration
func (s *configService) GetConfig(ctx context.Context) models.AppConfig {
	var ret models.AppConfig
	if s.config != nil {
		ret = *s.config
	} else if tmp, err := models.GetDefaultConfig(); err == nil {
		ret = *tmp
	}
	return ret
}

// LogLevel returns the configured log level - falling back to info for unknown values
func (s *configService) LogLevel(ctx context.Context) logrus.Level {
	lvl, err := logrus.ParseLevel(s.GetConfig(ctx).LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

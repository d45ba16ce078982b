package quali

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the service configuration, read from a yaml file by the
// command entrypoint.
type Config struct {
	// ProviderBaseURL is the base URL of the session data bridge.
	ProviderBaseURL string `yaml:"provider_base_url"`

	// CacheDir holds cached provider responses. Empty disables caching.
	CacheDir string `yaml:"cache_dir"`

	// OutputDir is where comparison images are written.
	OutputDir string `yaml:"output_dir"`

	// HTTPPort enables the HTTP surface when non-zero. The MCP stdio
	// surface is always on.
	HTTPPort uint16 `yaml:"http_port"`

	LogLevel string `yaml:"log_level"`

	// TopK is how many drivers get telemetry comparison.
	TopK int `yaml:"top_k"`
}

func DefaultConfig() Config {
	return Config{
		ProviderBaseURL: "http://localhost:3000",
		CacheDir:        os.TempDir() + "/fastf1_cache",
		OutputDir:       "./f1_visualizations",
		HTTPPort:        0,
		LogLevel:        "info",
		TopK:            DefaultTopK,
	}
}

// LoadConfig reads the config file at path, falling back to defaults when
// the file does not exist. Explicit values override defaults field-wise
// only where set; zero TopK means the default.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := ioutil.ReadFile(path)

	if os.IsNotExist(err) {
		return &config, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "could not read config at %s", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "could not parse config at %s", path)
	}

	if config.TopK == 0 {
		config.TopK = DefaultTopK
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.ProviderBaseURL == "" {
		return errors.Wrap(ErrInvalidParameter, "provider_base_url must not be empty")
	}

	if c.OutputDir == "" {
		return errors.Wrap(ErrInvalidParameter, "output_dir must not be empty")
	}

	if c.TopK < 1 {
		return errors.Wrapf(ErrInvalidParameter, "top_k must be at least 1, got %d", c.TopK)
	}

	return nil
}

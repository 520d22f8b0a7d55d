package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zyte-go/zyte/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "zyte.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultRoutes is the default routes directory.
	DefaultRoutes = "app/routes"

	// DefaultApp is the default app-level component module, which serves
	// the root path.
	DefaultApp = "app/app.js"

	// DefaultPublic is the default static files directory.
	DefaultPublic = "public"

	// DefaultOutput is the default static export directory.
	DefaultOutput = "dist"

	// DefaultCacheMaxAge is the default response cache TTL.
	DefaultCacheMaxAge = "60s"
)

// Config represents the complete zyte.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the server port.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Paths contains path configuration for project directories.
	Paths PathsConfig `json:"paths,omitempty"`

	// Cache contains response cache configuration.
	Cache CacheConfig `json:"cache,omitempty"`

	// Deploy contains static deploy configuration.
	Deploy DeployConfig `json:"deploy,omitempty"`

	// SiteURL is the canonical site URL used in sitemap generation.
	SiteURL string `json:"siteUrl,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Routes is the path to the routes directory.
	Routes string `json:"routes,omitempty"`

	// App is the path to the app-level component module serving "/".
	App string `json:"app,omitempty"`

	// Public is the path to the public static files directory.
	Public string `json:"public,omitempty"`

	// Output is the static export output directory.
	Output string `json:"output,omitempty"`
}

// CacheConfig contains response cache configuration.
type CacheConfig struct {
	// Enabled turns the response cache on.
	Enabled bool `json:"enabled,omitempty"`

	// MaxAge is the entry time-to-live (e.g. "60s", "5m").
	MaxAge string `json:"maxAge,omitempty"`

	// Prewarm renders every discovered route into the cache at startup.
	Prewarm bool `json:"prewarm,omitempty"`
}

// DeployConfig contains static deploy configuration.
type DeployConfig struct {
	// Bucket is the S3 bucket receiving the static export.
	Bucket string `json:"bucket,omitempty"`

	// Region is the bucket's AWS region.
	Region string `json:"region,omitempty"`

	// Prefix is an optional key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`
}

// New creates a config with defaults applied.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads zyte.json from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the given path.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithLocation(path, 0).
				WithSuggestion("Run `zyte create <name>` to scaffold a project.").
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfigInvalid).WithLocation(path, 0).Wrap(err)
	}

	c := &Config{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).WithLocation(path, 0).Wrap(err)
	}
	c.configPath = path
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the config back to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = ConfigFileName
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config to the given path.
func (c *Config) SaveTo(path string) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project root directory.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in zero values.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Paths.Routes == "" {
		c.Paths.Routes = DefaultRoutes
	}
	if c.Paths.App == "" {
		c.Paths.App = DefaultApp
	}
	if c.Paths.Public == "" {
		c.Paths.Public = DefaultPublic
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutput
	}
	if c.Cache.MaxAge == "" {
		c.Cache.MaxAge = DefaultCacheMaxAge
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("port %d is out of range", c.Port)
	}
	if _, err := time.ParseDuration(c.Cache.MaxAge); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("cache.maxAge %q is not a duration", c.Cache.MaxAge).
			WithSuggestion(`Use a Go duration string such as "60s" or "5m".`).
			Wrap(err)
	}
	return nil
}

// Address returns the host:port the server binds to.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// RoutesPath returns the absolute routes directory.
func (c *Config) RoutesPath() string {
	return c.abs(c.Paths.Routes)
}

// AppComponentPath returns the absolute path to the app-level component.
func (c *Config) AppComponentPath() string {
	return c.abs(c.Paths.App)
}

// PublicPath returns the absolute public directory.
func (c *Config) PublicPath() string {
	return c.abs(c.Paths.Public)
}

// OutputPath returns the absolute static export directory.
func (c *Config) OutputPath() string {
	return c.abs(c.Paths.Output)
}

// CacheMaxAge returns the parsed cache TTL. Validate guarantees it parses.
func (c *Config) CacheMaxAge() time.Duration {
	d, err := time.ParseDuration(c.Cache.MaxAge)
	if err != nil {
		d, _ = time.ParseDuration(DefaultCacheMaxAge)
	}
	return d
}

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Exists reports whether a zyte.json exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir until it finds a zyte.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("no %s found in %s or any parent directory", ConfigFileName, startDir)
		}
		dir = parent
	}
}

// LoadFromWorkingDir locates the project root from the current directory
// and loads its configuration.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

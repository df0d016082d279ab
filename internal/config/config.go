package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jusunglee/bikeshare-go/internal/models"
)

const (
	DataDirEnvVar   = "BIKESHARE_DATA_DIR"
	CatalogEnvVar   = "BIKESHARE_CATALOG"
	LogLevelEnvVar  = "LOG_LEVEL"
	PortEnvVar      = "PORT"
	defaultDataDir  = "data"
	timestampFormat = "2006-01-02 15:04:05"
)

var (
	ErrInvalidCatalog = errors.New("invalid city catalog")
	ErrUnknownCity    = errors.New("city not in catalog")
)

// CityEntry maps a city to its trip file
type CityEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Catalog lists the trip sources per city
type Catalog struct {
	Cities []CityEntry `yaml:"cities"`
}

// DefaultCatalog returns the standard three-city layout
func DefaultCatalog() *Catalog {
	return &Catalog{
		Cities: []CityEntry{
			{Name: string(models.Chicago), File: "chicago.csv"},
			{Name: string(models.NewYorkCity), File: "new_york_city.csv"},
			{Name: string(models.Washington), File: "washington.csv"},
		},
	}
}

// LoadCatalog reads a YAML catalog. An empty path returns DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading catalog %s", path)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(ErrInvalidCatalog, "error parsing catalog: %s", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks that every entry names a supported city once and has a file
func (c *Catalog) Validate() error {
	if len(c.Cities) == 0 {
		return errors.Wrap(ErrInvalidCatalog, "no cities configured")
	}

	seen := make(map[models.City]bool)
	for i, entry := range c.Cities {
		city, err := models.ParseCity(entry.Name)
		if err != nil {
			return errors.Wrapf(ErrInvalidCatalog, "entry %d: unsupported city %q", i, entry.Name)
		}
		if entry.File == "" {
			return errors.Wrapf(ErrInvalidCatalog, "entry %d: missing file for %s", i, city)
		}
		if seen[city] {
			return errors.Wrapf(ErrInvalidCatalog, "entry %d: duplicate city %s", i, city)
		}
		seen[city] = true
		c.Cities[i].Name = string(city)
	}
	return nil
}

// Names returns the configured cities in catalog order
func (c *Catalog) Names() []models.City {
	result := make([]models.City, 0, len(c.Cities))
	for _, entry := range c.Cities {
		result = append(result, models.City(entry.Name))
	}
	return result
}

// Path resolves the trip file of city relative to dataDir.
// Absolute file entries are returned unchanged.
func (c *Catalog) Path(dataDir string, city models.City) (string, error) {
	for _, entry := range c.Cities {
		if models.City(entry.Name) != city {
			continue
		}
		if filepath.IsAbs(entry.File) {
			return entry.File, nil
		}
		return filepath.Join(dataDir, entry.File), nil
	}
	return "", errors.Wrapf(ErrUnknownCity, "%s", city)
}

// Settings holds values read from the environment
type Settings struct {
	DataDir     string
	CatalogFile string
	LogLevel    string
	Port        string
}

// LoadEnv reads .env files when present. Missing files are not an error.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logrus.Warnf("error loading %s: %v", f, err)
		}
	}
}

// FromEnv builds Settings from environment variables, using defaults for empty values
func FromEnv(defaultLogLevel string) Settings {
	s := Settings{
		DataDir:     os.Getenv(DataDirEnvVar),
		CatalogFile: os.Getenv(CatalogEnvVar),
		LogLevel:    os.Getenv(LogLevelEnvVar),
		Port:        os.Getenv(PortEnvVar),
	}
	if s.DataDir == "" {
		s.DataDir = defaultDataDir
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	if s.Port == "" {
		s.Port = "8080"
	}
	return s
}

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	}
	logrus.SetFormatter(customFormatter)
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	return nil
}

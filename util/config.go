package util

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

// Config is Custodia base configuration
type Config struct {
	Server   Server   `yaml:"server"`
	Custodia Custodia `yaml:"custodia"`
}

type Server struct {
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	EnableTrace   bool   `yaml:"enableTrace"`
	ListenAddr    string `yaml:"listenAddr"`
}

type Custodia struct {
	FQDN       string `yaml:"fqdn"`
	PrivateKey string `yaml:"privatekey"`
	AdminGroup string `yaml:"adminGroup"`

	// DefaultRequestTTL is the lifetime of a created request in seconds.
	DefaultRequestTTL int `yaml:"defaultRequestTTL"`
	// SweepInterval is the reactor tick in seconds.
	SweepInterval int `yaml:"sweepInterval"`
}

const (
	DefaultRequestTTL    = 7 * 24 * 60 * 60
	DefaultSweepInterval = 60
)

// Load loads custodia config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Println("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Println("failed to load configuration file:", err)
		return err
	}

	if c.Custodia.DefaultRequestTTL == 0 {
		c.Custodia.DefaultRequestTTL = DefaultRequestTTL
	}
	if c.Custodia.SweepInterval == 0 {
		c.Custodia.SweepInterval = DefaultSweepInterval
	}

	return nil
}

type BuildInfo struct {
	BuildTime    string `json:"buildTime"`
	BuildMachine string `json:"buildMachine"`
	GoVersion    string `json:"goVersion"`
}

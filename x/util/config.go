package util

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

// Config is routegate base configuration
type Config struct {
	Server Server `yaml:"server"`
	Engine Engine `yaml:"engine"`
}

type Server struct {
	Addr          string `yaml:"addr"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	CacheBackend  string `yaml:"cacheBackend"` // memory, redis, memcached
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	LogPath       string `yaml:"logPath"`
}

type Engine struct {
	DefaultAccess      bool   `yaml:"defaultAccess"`
	DeniedRoute        string `yaml:"deniedRoute"`
	DefaultPermissions string `yaml:"defaultPermissions"` // source identifier
	Debug              bool   `yaml:"debug"`
}

// Load loads routegate config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Fatal("failed to load configuration file:", err)
		return err
	}

	return nil
}

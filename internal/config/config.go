package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env  string `yaml:"env" env:"ENV" env-default:"local"`
	Tiny struct {
		Token   string        `yaml:"token" env:"TINY_TOKEN" env-default:""`
		BaseURL string        `yaml:"base_url" env:"TINY_BASE_URL" env-default:"https://api.tiny.com.br/api2"`
		Timeout time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"tiny"`
	Fetch struct {
		// Requests per second and burst for the facade's paginated
		// fetch-all helpers. The transport itself never throttles.
		Rate  float64 `yaml:"rate" env-default:"2"`
		Burst int     `yaml:"burst" env-default:"1"`
	} `yaml:"fetch"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

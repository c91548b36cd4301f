package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Server   Server   `koanf:"server"`
	Clockify Clockify `koanf:"clockify"`
	Timeline Timeline `koanf:"timeline"`
}

type Server struct {
	Port        int    `koanf:"port"`
	CorsOrigins string `koanf:"corsorigins"`
}

type Clockify struct {
	ApiKey      string        `koanf:"apikey"`
	WorkspaceId string        `koanf:"workspaceid"`
	UserId      string        `koanf:"userid"`
	BaseUrl     string        `koanf:"baseurl"`
	Timeout     time.Duration `koanf:"timeout"`
	PageSize    int           `koanf:"pagesize"`
}

// Timeline holds the knobs of the aggregation engine.
type Timeline struct {
	MaxPeriodDays int `koanf:"maxperioddays"`
	// TimezoneOffset is a static shift in hours applied to upstream UTC instants. No DST handling.
	TimezoneOffset float64 `koanf:"timezoneoffset"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Port:        8000,
			CorsOrigins: "*",
		},
		Clockify: Clockify{
			BaseUrl:  "https://api.clockify.me/api/v1",
			Timeout:  30 * time.Second,
			PageSize: 1000,
		},
		Timeline: Timeline{
			MaxPeriodDays:  31,
			TimezoneOffset: 0,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "TIMELINE_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "TIMELINE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

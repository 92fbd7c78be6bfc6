package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

func developmentConfig() Config {
	bytes, err := os.ReadFile("config/development.yaml")
	if os.IsNotExist(err) {
		return defaultDevelopmentConfig()
	} else if err != nil {
		panic(err)
	}

	var file struct {
		Port int `yaml:"port"`
		DB   struct {
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			DBName   string `yaml:"dbname"`
		} `yaml:"db"`
	}
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		panic(err)
	}

	var maybePassword *string
	if file.DB.Password != "" {
		maybePassword = &file.DB.Password
	}

	return Config{
		Env:  EnvDevelopment,
		Port: file.Port,
		DB: DBConfig{
			User:          file.DB.User,
			MaybePassword: maybePassword,
			Host:          file.DB.Host,
			Port:          file.DB.Port,
			DBName:        file.DB.DBName,
		},
	}
}

func defaultDevelopmentConfig() Config {
	return Config{
		Env:  EnvDevelopment,
		Port: 3000,
		DB: DBConfig{
			User:          "postgres",
			MaybePassword: nil,
			Host:          "localhost",
			Port:          5432,
			DBName:        "stationboard_development",
		},
	}
}

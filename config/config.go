package config

import (
	"fmt"
	"os"
)

type Config struct {
	Env  Env
	Port int
	DB   DBConfig
}

type Env int

const (
	EnvDevelopment Env = iota
	EnvTesting
	EnvProduction
)

func (e Env) IsDevOrTest() bool {
	return e == EnvDevelopment || e == EnvTesting
}

type DBConfig struct {
	User          string
	MaybePassword *string
	Host          string
	Port          int
	DBName        string
}

func (c DBConfig) DSN() string {
	password := ""
	if c.MaybePassword != nil {
		password = fmt.Sprintf(" password=%s", *c.MaybePassword)
	}
	return fmt.Sprintf("user=%s%s host=%s port=%d dbname=%s", c.User, password, c.Host, c.Port, c.DBName)
}

var Cfg Config

func init() {
	if isTesting {
		Cfg = testingConfig()
		return
	}

	_, ok := os.LookupEnv("STATIONBOARD_ENV")
	if !ok {
		Cfg = developmentConfig()
		return
	}

	Cfg = productionConfig()
}

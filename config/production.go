package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

func productionConfig() Config {
	databaseUrl := mustLookupEnv("DATABASE_URL")
	dbUri, err := url.Parse(databaseUrl)
	if err != nil {
		panic(err)
	}
	dbPassword, ok := dbUri.User.Password()
	if !ok {
		panic("Password is not in the database url")
	}
	dbPort, err := strconv.Atoi(dbUri.Port())
	if err != nil {
		panic(err)
	}
	dbName := dbUri.Path[1:]

	port, err := strconv.Atoi(mustLookupEnv("PORT"))
	if err != nil {
		panic(err)
	}

	return Config{
		Env:  EnvProduction,
		Port: port,
		DB: DBConfig{
			User:          dbUri.User.Username(),
			MaybePassword: &dbPassword,
			Host:          dbUri.Hostname(),
			Port:          dbPort,
			DBName:        dbName,
		},
	}
}

func mustLookupEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Errorf("%s environment variable not set", key))
	}
	return value
}

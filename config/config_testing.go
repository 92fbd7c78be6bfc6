//go:build testing

package config

const isTesting = true

func testingConfig() Config {
	return Config{
		Env:  EnvTesting,
		Port: 3001,
		DB: DBConfig{
			User:          "postgres",
			MaybePassword: nil,
			Host:          "localhost",
			Port:          5432,
			DBName:        "stationboard_test",
		},
	}
}

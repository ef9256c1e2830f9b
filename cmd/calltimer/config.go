package main

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const configPrefix = "CALLTIMER"

type Configuration struct {
	Debug       bool   `default:"false" split_words:"false"`
	Label       string `default:"" split_words:"false"`
	MetricsFile string `default:"" split_words:"true"`
}

func getConfiguration() (*Configuration, error) {
	var configuration Configuration
	unsetEmptyVariables(configPrefix + "_")
	err := envconfig.Process(configPrefix, &configuration)
	if err != nil {
		return nil, err
	}
	return &configuration, nil
}

// unsetEmptyVariables treats FOO= like an unset FOO, so envconfig falls back
// to the default instead of failing to parse "".
func unsetEmptyVariables(prefix string) {
	for _, variable := range os.Environ() {
		name, value, _ := strings.Cut(variable, "=")
		if strings.HasPrefix(name, prefix) && value == "" {
			os.Unsetenv(name)
		}
	}
}

package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/iamdanielyin/dbrec/adapter"
)

// fileConfig is the TOML layout: one table of options per adapter name.
//
//	[adapters.mysqli]
//	host = "127.0.0.1"
//	database = "app"
type fileConfig struct {
	Adapters map[string]map[string]any `toml:"adapters"`
}

const envPrefix = "DBREC_"

// loadOptions merges, in increasing precedence, the adapter's table from a
// TOML file, DBREC_* entries of a .env file and key=value pairs.
func loadOptions(name, configFile, envFile string, pairs []string) (adapter.Options, error) {
	opts := adapter.Options{}
	if configFile != "" {
		var cfg fileConfig
		if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
			return nil, errors.Wrapf(err, "dbcheck: read %s", configFile)
		}
		for adapterName, values := range cfg.Adapters {
			if !strings.EqualFold(adapterName, name) {
				continue
			}
			for k, v := range values {
				opts[k] = v
			}
		}
	}
	if envFile != "" {
		env, err := godotenv.Read(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, "dbcheck: read %s", envFile)
		}
		for k, v := range env {
			if key, ok := strings.CutPrefix(k, envPrefix); ok && key != "" {
				opts[strings.ToLower(key)] = v
			}
		}
	}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.Errorf("dbcheck: option %q is not key=value", pair)
		}
		opts[k] = strings.TrimSpace(v)
	}
	return opts.Normalize(), nil
}

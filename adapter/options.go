package adapter

import (
	"encoding/json"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// Config is the decoded form of an option bag.
type Config struct {
	Dsn      string            `json:"dsn,omitempty"`
	Type     string            `json:"type,omitempty"`
	Host     string            `json:"host,omitempty"`
	Port     int               `json:"port,omitempty"`
	Database string            `json:"database,omitempty"`
	Username string            `json:"username,omitempty"`
	Password string            `json:"password,omitempty"`
	Charset  string            `json:"charset,omitempty"`
	SSLMode  string            `json:"ssl_mode,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

var optionAliases = map[string]string{
	"db":        "database",
	"dbname":    "database",
	"db_name":   "database",
	"user":      "username",
	"user_name": "username",
	"pass":      "password",
	"passwd":    "password",
	"hostname":  "host",
	"driver":    "type",
	"sslmode":   "ssl_mode",
}

var familyDefaults = map[Family]Config{
	FamilyMysqli: {Host: "localhost", Port: 3306, Charset: "utf8mb4"},
	FamilyPgsql:  {Host: "localhost", Port: 5432, SSLMode: "disable"},
	FamilySqlsrv: {Host: "localhost", Port: 1433},
	FamilyOracle: {Host: "localhost", Port: 1521},
}

// Normalize returns a copy of opts with snake_case keys and aliases resolved.
func (opts Options) Normalize() Options {
	out := make(Options, len(opts))
	for k, v := range opts {
		key := strcase.ToSnake(strings.TrimSpace(k))
		if alias, ok := optionAliases[key]; ok {
			key = alias
		}
		out[key] = v
	}
	return out
}

// Decode reads opts into a Config and fills family defaults for unset fields.
func (opts Options) Decode(family Family) (*Config, error) {
	norm := opts.Normalize()
	if v, ok := norm["port"].(string); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, &ConfigurationError{Family: family, Field: "port", Reason: err.Error()}
		}
		norm["port"] = port
	}
	raw, err := json.Marshal(norm)
	if err != nil {
		return nil, errors.Wrap(err, "dbrec: encode options")
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &ConfigurationError{Family: family, Reason: err.Error()}
	}
	if defaults, ok := familyDefaults[family]; ok {
		if err := mergo.Merge(&cfg, defaults); err != nil {
			return nil, errors.Wrap(err, "dbrec: merge option defaults")
		}
	}
	return &cfg, nil
}

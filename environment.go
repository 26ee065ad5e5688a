package writium

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is a different context in which a writium app operates.
//
// Development is the only Environment serving plain HTTP
// and exposing the cache admin without a JWT secret.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsTesting() bool     { return e == Testing }

// envVarOr parses the environment variable key with parse,
// returning def if key is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}

	val, err := parse(raw)
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrBool reads key as "true" or "false", in any case, or returns def.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(raw string) (bool, error) {
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, ErrNotValid
		}
	})
}

// EnvVarOrDuration reads key as a [time.Duration], e.g. "30s", or returns def.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment], in any case,
// or returns def if key does not name a valid [Environment].
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(raw string) (Environment, error) {
		env := Environment(strings.ToUpper(raw))
		return env, env.Valid()
	})
}

// EnvVarOrInt reads key as a base 10 int or returns def.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrString reads key or returns def if key is unset or empty.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(raw string) (string, error) { return raw, nil })
}

// EnvVarOrStrings reads key as a comma-separated list, trimming each item
// and dropping empty ones, or returns def if no items remain.
func EnvVarOrStrings(key string, def []string) []string {
	return envVarOr(key, def, func(raw string) ([]string, error) {
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}

		if len(items) == 0 {
			return nil, errors.New("no items")
		}

		return items, nil
	})
}

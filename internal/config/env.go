package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file consulted when --env-file is not given.
const DefaultEnvFile = ".env"

// Env resolves variables from the process environment first and a dotenv
// file second. The dotenv file never overrides a non-empty process value.
type Env struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
	path   string
}

// LoadEnv reads the dotenv file at path. A missing file is tolerated unless
// explicit is set. lookup defaults to os.LookupEnv.
func LoadEnv(path string, explicit bool, lookup func(string) (string, bool)) (*Env, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := &Env{lookup: lookup}

	path = strings.TrimSpace(path)
	if path == "" {
		return env, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return env, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	env.dotenv = values
	env.path = path
	return env, nil
}

// Lookup returns the value of key.
func (e *Env) Lookup(key string) (string, bool) {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if v, ok := e.dotenv[key]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return "", false
}

// Source describes where key would be resolved from: "env", the dotenv
// path, or "" when unset.
func (e *Env) Source(key string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return "env"
	}
	if v, ok := e.dotenv[key]; ok && strings.TrimSpace(v) != "" {
		return e.path
	}
	return ""
}

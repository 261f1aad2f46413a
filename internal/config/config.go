// Package config resolves the per-user fnord home directory and carries the
// explicit Context value threaded through every store and settings operation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sysread/fnord/internal/logging"
)

// Context identifies the fnord home a process operates against. There is no
// ambient "current" context; every component receives one explicitly.
type Context struct {
	// Home is the absolute path to the per-user fnord directory (~/.fnord).
	Home string

	// Diag receives diagnostic events. Defaults to a no-op sink.
	Diag logging.Sink
}

// NewContext resolves the fnord home directory and returns a Context.
//
// Resolution order:
//  1. FNORD_HOME environment variable, if set.
//  2. ~/.fnord under the user's home directory.
func NewContext() (*Context, error) {
	home := os.Getenv("FNORD_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		home = filepath.Join(userHome, ".fnord")
	}
	return &Context{Home: home, Diag: logging.FromEnv()}, nil
}

// SettingsPath returns the absolute path to settings.json.
func (c *Context) SettingsPath() string {
	return filepath.Join(c.Home, "settings.json")
}

// ProjectsDir returns the directory holding all per-project entry stores.
func (c *Context) ProjectsDir() string {
	return filepath.Join(c.Home, "projects")
}

// ProjectStorePath returns the entry-store root for one named project.
func (c *Context) ProjectStorePath(name string) string {
	return filepath.Join(c.ProjectsDir(), name)
}

// EnvFilePath returns the absolute path to the fnord dotenv file (~/.fnord/.env).
func (c *Context) EnvFilePath() string {
	return filepath.Join(c.Home, ".env")
}

// GetConfigValue resolves a configuration key from the process environment
// first, then from ~/.fnord/.env. Missing keys resolve to "".
func (c *Context) GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	vals, err := c.envFile()
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

func (c *Context) envFile() (map[string]string, error) {
	p := c.EnvFilePath()
	vals, err := godotenv.Read(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read env file %s: %w", p, err)
	}
	return vals, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

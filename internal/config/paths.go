package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigEnv names the environment variable that points at an alternate config file.
const ConfigEnv = "BOOTSTACK_CONFIG"

const (
	homeDirName    = ".bootstack"
	configFileName = "config.yaml"
)

// Paths locates the per-user files bootstack reads and `config init` writes.
type Paths struct {
	// ConfigFile is ~/.bootstack/config.yaml.
	ConfigFile string

	// HomeDir is ~/.bootstack; `config init` creates it with mode 0700.
	HomeDir string
}

// DefaultPaths resolves Paths under the current user's home directory.
func DefaultPaths() (*Paths, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	home := filepath.Join(userHome, homeDirName)
	return &Paths{
		ConfigFile: filepath.Join(home, configFileName),
		HomeDir:    home,
	}, nil
}

// GetConfigFile is the file Loader.Load reads when no --config flag is given:
// $BOOTSTACK_CONFIG if set, otherwise ~/.bootstack/config.yaml.
func GetConfigFile() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, nil
	}
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath resolves a leading "~" or "~/" against the home directory so
// --config and BOOTSTACK_CONFIG accept shell-style paths. "~user" is left as is.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if rest == "" {
		return userHome, nil
	}
	return filepath.Join(userHome, rest[1:]), nil
}

// Package where resolves the directories cuelink reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "CUELINK_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the config directory, $XDG_CONFIG_HOME/cuelink or the platform equivalent.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}
	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Cuelink))
}

// Cache is the cache directory. Falls back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.Cuelink))
}

// Logs is where log files go.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Chapters is the default directory for chapter documents created by `chapters init`.
func Chapters() string {
	return mkdir(filepath.Join(Config(), "chapters"))
}

// Aniskip is the file the AniSkip response cache is persisted to.
func Aniskip() string {
	return filepath.Join(Cache(), "aniskip.json")
}

// Temp holds player sockets.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.Cuelink))
}

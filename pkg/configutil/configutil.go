package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localVariant turns "dir/config.json5" into "dir/config.local.json5".
func localVariant(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// decodeInto unmarshals the file at path over the current contents of out,
// keys missing from the file keep their values. It reports whether the file existed.
func decodeInto[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads a json5 configuration file, `name` must carry its extension.
// A sibling "<name>.local.<ext>" file is applied over it when present.
// os.ErrNotExist is returned when neither exists.
func ReadConfig[T any](name string) (T, error) {
	var empty T
	return ReadConfigOnto(name, empty)
}

// ReadConfigOnto is ReadConfig starting from `base` instead of the zero value.
// Only the keys present in the files replace values of base, so an explicit
// 0, false or "" in a file is kept.
func ReadConfigOnto[T any](name string, base T) (T, error) {
	foundDefault, err := decodeInto(name, &base)
	if err != nil {
		return base, err
	}

	localPath := localVariant(name)
	foundLocal, err := decodeInto(localPath, &base)
	if err != nil {
		return base, err
	}
	if foundLocal {
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !foundDefault && !foundLocal {
		return base, os.ErrNotExist
	}
	return base, nil
}

// ReadRecursively is ReadConfig but it walks up from the cwd to the filesystem
// root until it finds a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var empty T

	current, err := os.Getwd()
	if err != nil {
		return empty, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return empty, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return empty, os.ErrNotExist
		}
		current = parent
	}
}

// Layer merges the non-zero fields of `override` over `base` and returns the result,
// a zero field in override means unset. Use it for sources like command line flags
// where the zero value cannot be told apart from a missing one.
func Layer[T any](base, override T) (T, error) {
	err := mergo.Merge(&base, override, mergo.WithOverride)
	return base, err
}

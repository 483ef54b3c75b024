package config

import (
	"os"
	"path/filepath"
)

// FindConfigFile returns gridlint.yaml or gridlint.yml in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SearchConfigFile walks up from startDir at most depth levels looking for
// a config file. Returns "" if none is found.
func SearchConfigFile(startDir string, depth int) string {
	dir := startDir
	for i := 0; i < depth; i++ {
		if path := FindConfigFile(dir); path != "" {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}

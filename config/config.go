package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"

	"keidec/common"
	"keidec/symtab"
)

// tomlConfigFile represents the config file as it is encoded in TOML
type tomlConfigFile struct {
	Version  string        `toml:"keidec-version"`
	Compiler *tomlCompiler `toml:"compiler"`
}

// tomlCompiler represents the `[compiler]` table as it is encoded in TOML
type tomlCompiler struct {
	LogLevel      string `toml:"log-level"`
	HashTableSize int    `toml:"hash-table-size"`
	TargetTriple  string `toml:"target-triple"`
	ModuleName    string `toml:"module-name"`
}

// Config is the configuration of a compilation.
type Config struct {
	// Path is the path of the loaded config file.  It is empty if defaults
	// are used.
	Path string

	LogLevel      string
	HashTableSize int

	// TargetTriple may be empty in which case the host triple is used.
	TargetTriple string

	// ModuleName defaults to the base name of the source file.
	ModuleName string
}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	return &Config{
		LogLevel:      "verbose",
		HashTableSize: symtab.DefaultHashSize,
	}
}

// Find locates the config file for the source file at srcPath: it is looked
// for next to the source file first and then in the working directory.  The
// returned path is empty if there is no config file.
func Find(srcPath string) (string, error) {
	dirs := []string{filepath.Dir(srcPath)}

	workDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dirs = append(dirs, workDir)

	for _, dir := range dirs {
		path := filepath.Join(dir, common.ConfigFileName)

		finfo, err := os.Stat(path)
		if err == nil {
			if finfo.IsDir() {
				return "", fmt.Errorf("%s must be a file", path)
			}

			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
	}

	return "", nil
}

// Load loads the configuration for the source file at srcPath.  Defaults are
// returned if there is no config file.
func Load(srcPath string) (*Config, error) {
	path, err := Find(srcPath)
	if err != nil {
		return nil, err
	}

	var conf *Config
	if path == "" {
		conf = Default()
	} else if conf, err = LoadFile(path); err != nil {
		return nil, err
	}

	if conf.ModuleName == "" {
		conf.ModuleName = filepath.Base(srcPath)
	}

	return conf, nil
}

// LoadFile loads and validates the config file at path.
func LoadFile(path string) (*Config, error) {
	// open file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	conf, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	conf.Path = path
	return conf, nil
}

// Parse decodes and validates the contents of a config file.  Missing values
// are given their defaults.
func Parse(buff []byte) (*Config, error) {
	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	if err := checkVersion(tcf.Version); err != nil {
		return nil, err
	}

	conf := Default()
	if tcf.Compiler == nil {
		return conf, nil
	}

	if err := validateCompiler(tcf.Compiler); err != nil {
		return nil, err
	}

	if tcf.Compiler.LogLevel != "" {
		conf.LogLevel = tcf.Compiler.LogLevel
	}

	if tcf.Compiler.HashTableSize != 0 {
		conf.HashTableSize = tcf.Compiler.HashTableSize
	}

	conf.TargetTriple = tcf.Compiler.TargetTriple
	conf.ModuleName = tcf.Compiler.ModuleName

	return conf, nil
}

// checkVersion checks that the running compiler satisfies the version the
// config file requires.  A missing version accepts every compiler.
func checkVersion(version string) error {
	if version == "" {
		return nil
	}

	if !semver.IsValid(version) {
		return fmt.Errorf("invalid keidec version: `%s`", version)
	}

	if semver.Compare(version, CompilerVersion()) > 0 {
		return fmt.Errorf("keidec version %s is required but this is %s", version, CompilerVersion())
	}

	return nil
}

// CompilerVersion returns the semantic version of the running compiler.
func CompilerVersion() string {
	return "v" + common.KeidecVersion
}

var logLevels = map[string]struct{}{
	"silent":  {},
	"error":   {},
	"warning": {},
	"warn":    {},
	"verbose": {},
}

// validateCompiler checks the values of the `[compiler]` table.
func validateCompiler(tc *tomlCompiler) error {
	if tc.LogLevel != "" {
		if _, ok := logLevels[tc.LogLevel]; !ok {
			return fmt.Errorf("invalid log level: `%s`", tc.LogLevel)
		}
	}

	if tc.HashTableSize < 0 {
		return errors.New("hash table size must be positive")
	}

	return nil
}

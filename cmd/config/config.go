/*
Copyright © 2022 - 2026 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/twpayne/go-vfs"

	"github.com/rancher-sandbox/nvm-prune/pkg/config"
	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	pruneError "github.com/rancher-sandbox/nvm-prune/pkg/error"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

// setDecoder keeps unmarshalling weakly typed so env values like
// NVM_PRUNE_JOBS=2 or NVM_PRUNE_SIZE=false are accepted
func setDecoder(config *mapstructure.DecoderConfig) {
	config.WeaklyTypedInput = true
	config.ZeroFields = false
}

var decodeHook = viper.DecodeHook(
	mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	),
)

func setupLogger(logger v1.Logger, fsys v1.FS) {
	// Set debug level
	if viper.GetBool("debug") {
		logger.SetLevel(v1.DebugLevel())
	}

	// Set formatter so both file and stderr format are equal
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableColors:    false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	// stdout is kept for the command output, logs go to stderr
	logfile := viper.GetString("logfile")
	if logfile != "" {
		o, err := fsys.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fs.ModePerm)
		if err != nil {
			logger.Errorf("Could not open %s for logging to file: %s", logfile, err.Error())
			if viper.GetBool("quiet") {
				logger.SetOutput(io.Discard)
			}
			return
		}

		if viper.GetBool("quiet") { // if quiet is set, only set the log to the file
			logger.SetOutput(o)
		} else { // else set it to both stderr and the file
			logger.SetOutput(io.MultiWriter(os.Stderr, o))
		}
	} else { // no logfile
		if viper.GetBool("quiet") { // quiet is enabled so discard all logging
			logger.SetOutput(io.Discard)
		} else {
			logger.SetOutput(os.Stderr)
		}
	}
}

// readConfigFiles merges config.yaml from the default locations and from
// configDir, later ones overriding earlier ones. Missing files are fine.
func readConfigFiles(configDir string, logger v1.Logger) error {
	home, _ := os.UserHomeDir()
	dirs := constants.GetDefaultConfigDirs(home)
	if configDir != "" {
		dirs = append(dirs, configDir)
	}

	viper.SetConfigType("yaml")
	for _, dir := range dirs {
		file := filepath.Join(dir, constants.ConfigFile)
		if _, err := os.Stat(file); err != nil {
			continue
		}
		viper.SetConfigFile(file)
		if err := viper.MergeInConfig(); err != nil {
			return fmt.Errorf("failed reading %s: %w", file, err)
		}
		logger.Debugf("Loaded config file %s", file)
	}
	return nil
}

// readEnvOverrides returns the variables to set for nvm, from the env-file
// first and then from the env map, which takes precedence
func readEnvOverrides(fsys v1.FS) (map[string]string, error) {
	overrides := map[string]string{}

	if envFile := viper.GetString("env-file"); envFile != "" {
		data, err := fsys.ReadFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed reading env-file: %w", err)
		}
		fromFile, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed parsing env-file %s: %w", envFile, err)
		}
		for k, v := range fromFile {
			overrides[k] = v
		}
	}

	for k, v := range viper.GetStringMapString("env") {
		// viper lower cases map keys read from config files
		overrides[strings.ToUpper(k)] = v
	}

	return overrides, nil
}

func ReadConfigRun(configDir string, flags *pflag.FlagSet) (*v1.Config, error) {
	logger := v1.NewLogger()
	fsys := vfs.OSFS

	if flags != nil {
		_ = viper.BindPFlags(flags)
	}

	// Set the prefix for vars so we get only the ones starting with NVM_PRUNE
	viper.SetEnvPrefix(constants.EnvPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	// nvm's own variable is honoured as well, the prefixed one wins
	_ = viper.BindEnv("nvm-dir", constants.EnvPrefix+"_NVM_DIR", constants.NvmDirEnv)
	viper.AutomaticEnv()

	setupLogger(logger, fsys)

	if err := readConfigFiles(configDir, logger); err != nil {
		return nil, pruneError.NewFromError(err, pruneError.ReadConfig)
	}

	overrides, err := readEnvOverrides(fsys)
	if err != nil {
		return nil, pruneError.NewFromError(err, pruneError.ReadConfig)
	}

	// unmarshal all the vars into the settings object
	settings := &v1.Config{}
	if err := viper.Unmarshal(settings, setDecoder, decodeHook); err != nil {
		return nil, pruneError.NewFromError(err, pruneError.ReadConfig)
	}

	if settings.NvmDir == "" {
		cfgErr := &v1.ConfigurationError{
			Key:  constants.NvmDirEnv,
			Hint: "is nvm installed? export NVM_DIR or use --nvm-dir",
		}
		logger.Error(cfgErr.Error())
		return nil, pruneError.NewFromError(cfgErr, pruneError.NvmDirUnset)
	}
	nvmDir, err := filepath.Abs(settings.NvmDir)
	if err != nil {
		return nil, pruneError.NewFromError(err, pruneError.ReadConfig)
	}

	opts := []config.GenericOptions{
		config.WithLogger(logger),
		config.WithFs(fsys),
		config.WithNvmDir(nvmDir),
		config.WithNvmBin(settings.NvmBin),
		config.WithEnv(os.Environ(), overrides),
	}
	if settings.Shell != "" {
		opts = append(opts, config.WithShell(settings.Shell))
	}
	return config.NewConfig(opts...), nil
}

// ReadPruneSpec returns the list/prune settings from flags, environment and
// config files, defaults applied and validated
func ReadPruneSpec(cfg *v1.Config, flags *pflag.FlagSet) (*v1.PruneSpec, error) {
	spec := config.NewPruneSpec()
	if flags != nil {
		_ = viper.BindPFlags(flags)
	}

	if err := viper.Unmarshal(spec, setDecoder, decodeHook); err != nil {
		cfg.Logger.Warnf("error unmarshalling PruneSpec: %s", err)
		return nil, pruneError.NewFromError(err, pruneError.ReadConfig)
	}
	if err := spec.Sanitize(); err != nil {
		return nil, pruneError.NewFromError(err, pruneError.InvalidSpec)
	}
	cfg.Logger.Debugf("Loaded prune spec: %+v", *spec)
	return spec, nil
}

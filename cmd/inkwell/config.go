package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type config struct {
	APIAddress string `json:"apiAddress"`
}

func getConfig() (*config, error) {
	inkwellHome, err := getInkwellHome()
	if err != nil {
		return nil, errors.Wrap(err, "error finding inkwell home")
	}
	inkwellConfigFile := path.Join(inkwellHome, "config")

	configBytes, err := ioutil.ReadFile(inkwellConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(
				"no inkwell configuration was found at %s; please use "+
					"`inkwell login` to continue",
				inkwellConfigFile,
			)
		}
		return nil, errors.Wrapf(
			err,
			"error reading inkwell config file at %s",
			inkwellConfigFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing inkwell config file at %s",
			inkwellConfigFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	inkwellHome, err := getInkwellHome()
	if err != nil {
		return errors.Wrap(err, "error finding inkwell home")
	}
	if _, err = os.Stat(inkwellHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of inkwell home at %s",
				inkwellHome,
			)
		}
		// The directory doesn't exist-- create it
		if err = os.MkdirAll(inkwellHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating inkwell home at %s",
				inkwellHome,
			)
		}
	}
	inkwellConfigFile := path.Join(inkwellHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err :=
		ioutil.WriteFile(inkwellConfigFile, configBytes, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", inkwellConfigFile)
	}
	return nil
}

// getTokenPath returns the path of the durable credential slot used by the
// session manager.
func getTokenPath() (string, error) {
	inkwellHome, err := getInkwellHome()
	if err != nil {
		return "", errors.Wrap(err, "error finding inkwell home")
	}
	if err := os.MkdirAll(inkwellHome, 0755); err != nil {
		return "", errors.Wrapf(
			err,
			"error creating inkwell home at %s",
			inkwellHome,
		)
	}
	return path.Join(inkwellHome, "token"), nil
}

func getInkwellHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".inkwell"), nil
}

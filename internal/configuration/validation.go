package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/exp/slices"
)

const minPollingRate = 100 * time.Millisecond

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateDevice(&config.Device)
	if err != nil {
		return err
	}

	if config.PollingRate < minPollingRate {
		return fmt.Errorf("pollingRate must be at least %s, got: %s", minPollingRate, config.PollingRate)
	}
	if config.TrendWindowSize < 1 {
		return fmt.Errorf("trendWindowSize must be >= 1, got: %d", config.TrendWindowSize)
	}
	if len(config.DbPath) <= 0 {
		return errors.New("dbPath must not be empty")
	}

	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}
	return validatePort("simulator", config.Simulator.Port)
}

func validateDevice(config *DeviceConfig) error {
	if len(config.Url) <= 0 {
		return errors.New("device.url is missing")
	}
	u, err := url.Parse(config.Url)
	if err != nil {
		return fmt.Errorf("device.url is invalid: %v", err)
	}
	if !slices.Contains([]string{"http", "https"}, u.Scheme) {
		return fmt.Errorf("device.url has unsupported scheme '%s', use one of: http | https", u.Scheme)
	}
	if len(u.Host) <= 0 {
		return fmt.Errorf("device.url is missing a host: %s", config.Url)
	}
	if config.Timeout <= 0 {
		return fmt.Errorf("device.timeout must be positive, got: %s", config.Timeout)
	}
	return nil
}

func validatePort(section string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s.port must be in range 1..65535, got: %d", section, port)
	}
	return nil
}

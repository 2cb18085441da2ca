package configuration

import "time"

type DeviceConfig struct {
	// Url is the base url of the thermostat, e.g. http://192.168.4.1
	Url     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

package global

import (
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
	Yes     bool
)

// ReadConfig detects, loads and validates the configuration.
func ReadConfig() error {
	configPath := configuration.DetectConfigFile()
	if len(configPath) > 0 {
		ui.Debug("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	return configuration.Validate()
}

func NewDeviceClient() *device.Client {
	config := configuration.CurrentConfig.Device
	return device.NewClient(config.Url, config.Timeout)
}

func OpenPersistence() (persistence.Persistence, error) {
	p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}

// Confirmer asks interactively unless --yes was given.
func Confirmer() ui.Confirmer {
	if Yes {
		return ui.AutoConfirmer{Answer: true}
	}
	return ui.PromptConfirmer{}
}

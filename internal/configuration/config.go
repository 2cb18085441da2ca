package configuration

import (
	"errors"
	"os"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Device DeviceConfig `json:"device"`

	PollingRate     time.Duration `json:"pollingRate"`
	TrendWindowSize int           `json:"trendWindowSize"`

	Statistics StatisticsConfig `json:"statistics"`
	Simulator  SimulatorConfig  `json:"simulator"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("heat2go")
	viper.SetEnvPrefix("heat2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/heat2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("dbPath", home+"/.local/share/heat2go/heat2go.db")

	viper.SetDefault("device.url", "http://192.168.4.1")
	viper.SetDefault("device.timeout", 5*time.Second)

	viper.SetDefault("pollingRate", 2*time.Second)
	viper.SetDefault("trendWindowSize", 30)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("simulator.host", "127.0.0.1")
	viper.SetDefault("simulator.port", 8080)
}

// DetectConfigFile reads the config file, if any, and returns its path.
// A missing config file is not an error, all values have defaults.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Debug("No config file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

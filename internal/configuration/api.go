package configuration

// SimulatorConfig configures the REST endpoint of the device simulator.
type SimulatorConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

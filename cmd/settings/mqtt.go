package settings

import (
	"time"

	"github.com/markusressel/heat2go/internal/mqttprobe"
	"github.com/markusressel/heat2go/internal/sanitize"
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var mqttTimeout time.Duration

var checkMqttCmd = &cobra.Command{
	Use:   "check-mqtt",
	Short: "Check that the configured MQTT broker accepts a connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		host := session.Fields.Get(settings.FieldMqttHost)
		token := session.Fields.Get(settings.FieldMqttToken)
		port, _ := sanitize.ParseInt(session.Fields.Get(settings.FieldMqttPort))

		brokerUrl := mqttprobe.BrokerUrl(host, port)
		ui.Info("Connecting to %s ...", brokerUrl)
		if err := mqttprobe.Probe(cmd.Context(), host, port, token, mqttTimeout); err != nil {
			ui.Error("MQTT broker not reachable: %v", err)
			return err
		}
		ui.Success("MQTT broker %s accepted the connection", brokerUrl)
		return nil
	},
}

func init() {
	checkMqttCmd.Flags().DurationVarP(&mqttTimeout, "timeout", "t", 10*time.Second, "Connection timeout")
	Command.AddCommand(checkMqttCmd)
}

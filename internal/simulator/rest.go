package simulator

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	indentationChar = "  "
	responseOk      = "OK"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService exposes the device API of d. Request metrics are
// recorded in registry and served on /metrics.
func CreateRestService(d *Device, registry *prometheus.Registry) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ui.Debug("%s %s -> %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "heat2go",
		Subsystem:  "simulator",
		Registerer: registry,
	}))

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/metrics/", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	registerDeviceEndpoints(echoRest, d)

	return echoRest
}

func registerDeviceEndpoints(rest *echo.Echo, d *Device) {
	group := rest.Group("/api")

	group.GET("/status/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, d.Status())
	})
	group.POST("/action/", func(c echo.Context) error {
		return postAction(c, d)
	})
	group.GET("/schedule/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, d.Schedule())
	})
	group.POST("/schedule/", func(c echo.Context) error {
		var doc device.Schedule
		if err := c.Bind(&doc); err != nil {
			return returnBadRequest(c, err)
		}
		d.StoreSchedule(doc)
		return c.String(http.StatusOK, responseOk)
	})
	group.GET("/settings/", func(c echo.Context) error {
		doc := d.Settings()
		doc.Wifi.Pass = ""
		return c.JSON(http.StatusOK, doc)
	})
	group.POST("/settings/", func(c echo.Context) error {
		var doc device.ConfigDocument
		if err := c.Bind(&doc); err != nil {
			return returnBadRequest(c, err)
		}
		d.StoreSettings(doc)
		ui.Info("Settings stored, rebooting simulated device")
		return c.String(http.StatusOK, responseOk)
	})
}

func postAction(c echo.Context, d *Device) error {
	var action device.Action
	if err := c.Bind(&action); err != nil {
		return returnBadRequest(c, err)
	}

	switch action.Action {
	case device.ActionSetMode:
		if len(action.Mode) > 0 {
			d.SetMode(action.Mode)
		}
	case device.ActionSetTemp:
		if action.Value != nil {
			d.SetManualSetpoint(float64(float32(*action.Value)))
		}
	default:
		ui.Warning("Ignoring unknown action '%s'", action.Action)
	}
	return c.String(http.StatusOK, responseOk)
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return the error message of a malformed request
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

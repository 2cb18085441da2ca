package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"mqtt.port": 1,
		"geo.lat":   2,
		"wifi.ssid": 3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"geo.lat", "mqtt.port", "wifi.ssid"}, result)
}

func TestSortedKeysEmpty(t *testing.T) {
	// WHEN
	result := SortedKeys(map[int]bool{})

	// THEN
	assert.Empty(t, result)
}

package ui

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var colorEnabled = true

func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// RenderTable formats rows below the given headers.
func RenderTable(headers []string, rows [][]string) (string, error) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           colorEnabled,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func PrintTable(headers []string, rows [][]string) error {
	tableString, err := RenderTable(headers, rows)
	if err != nil {
		return err
	}
	Printfln("%s", tableString)
	return nil
}

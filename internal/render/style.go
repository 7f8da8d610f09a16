package render

import (
	"github.com/fatih/color"

	"github.com/i474232898/weather-cli/internal/weather"
)

// Style pairs a condition with its display icon and color.
type Style struct {
	Icon  string
	Color color.Attribute
}

// FallbackStyle is used for any condition without an entry in the table.
var FallbackStyle = Style{Icon: "?", Color: color.FgWhite}

var styles = map[weather.Condition]Style{
	weather.ConditionClear:        {Icon: "☀", Color: color.FgYellow},
	weather.ConditionClouds:       {Icon: "☁", Color: color.FgWhite},
	weather.ConditionRain:         {Icon: "☔", Color: color.FgBlue},
	weather.ConditionSnow:         {Icon: "❄", Color: color.FgCyan},
	weather.ConditionThunderstorm: {Icon: "⚡", Color: color.FgMagenta},
	weather.ConditionMist:         {Icon: "\U0001F32B", Color: color.FgHiBlack},
}

// LookupStyle returns the style for an already lower-cased condition.
func LookupStyle(c weather.Condition) Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return FallbackStyle
}

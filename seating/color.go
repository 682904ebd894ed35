package seating

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	goldenAngle     = 137.50776405003785
	groupSaturation = 0.55
	groupValue      = 0.95
)

// GroupColor derives a display color from the group id alone. Consecutive ids
// are spread around the hue circle by the golden angle.
func GroupColor(id int) string {
	if id <= 0 {
		return "#ffffff"
	}
	hue := math.Mod(float64(id)*goldenAngle, 360)
	return colorful.Hsv(hue, groupSaturation, groupValue).Hex()
}

// ContrastColor picks black or white text for the given background.
func ContrastColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.18 {
		return "#000000"
	}
	return "#ffffff"
}

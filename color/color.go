// Package color converts a hex colour and an opacity fraction into the
// textual and normalized RGBA forms written into theme files.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidFormat is returned when a colour is not #RGB or #RRGGBB.
	ErrInvalidFormat = errors.New("invalid hex color format")
	// ErrOutOfRange is returned when an opacity is outside [0, 1].
	ErrOutOfRange = errors.New("opacity out of range")
)

var hexPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// percentEpsilon absorbs float error before truncation, so 0.29 maps to 29.
const percentEpsilon = 1e-9

// ValidateHex reports whether hex is a #RGB or #RRGGBB colour.
func ValidateHex(hex string) error {
	if !hexPattern.MatchString(hex) {
		return fmt.Errorf("%w: %q must be #RGB or #RRGGBB", ErrInvalidFormat, hex)
	}
	return nil
}

// ValidateOpacity reports whether opacity lies in the closed interval [0, 1].
func ValidateOpacity(opacity float64) error {
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return fmt.Errorf("%w: %v must be between 0 and 1", ErrOutOfRange, opacity)
	}
	return nil
}

// Validate checks both halves of a colour/opacity pair.
func Validate(hex string, opacity float64) error {
	if err := ValidateHex(hex); err != nil {
		return err
	}
	return ValidateOpacity(opacity)
}

// Bytes returns the red, green and blue bytes of hex. Short colours
// expand each nibble, so #abc is read as #aabbcc.
func Bytes(hex string) (r, g, b uint8, err error) {
	if err := ValidateHex(hex); err != nil {
		return 0, 0, 0, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// RGBAText renders hex and opacity as "rgba(R, G, B, A)".
func RGBAText(hex string, opacity float64) (string, error) {
	if err := ValidateOpacity(opacity); err != nil {
		return "", err
	}
	r, g, b, err := Bytes(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, FormatAlpha(opacity)), nil
}

// NormalizedRGBA returns {R/255, G/255, B/255, opacity}.
func NormalizedRGBA(hex string, opacity float64) ([4]float64, error) {
	if err := ValidateOpacity(opacity); err != nil {
		return [4]float64{}, err
	}
	r, g, b, err := Bytes(hex)
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{
		float64(r) / 255.0,
		float64(g) / 255.0,
		float64(b) / 255.0,
		opacity,
	}, nil
}

// Percent converts opacity into a whole percentage, truncating toward zero.
func Percent(opacity float64) (int, error) {
	if err := ValidateOpacity(opacity); err != nil {
		return 0, err
	}
	return int(math.Trunc(opacity*100 + percentEpsilon)), nil
}

// FormatAlpha prints v with the shortest decimal form that round-trips.
func FormatAlpha(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatComponents formats each normalized component with FormatAlpha.
func FormatComponents(rgba [4]float64) []string {
	out := make([]string, len(rgba))
	for i, v := range rgba {
		out[i] = FormatAlpha(v)
	}
	return out
}

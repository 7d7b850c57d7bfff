package iconset

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults holds the values of the [defaults] section of a config file.
type Defaults struct {
	Profile     string  `toml:"profile"`
	Format      string  `toml:"format"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Padding     int     `toml:"padding"`
	Zoom        float64 `toml:"zoom"`
	Transparent bool    `toml:"transparent"`
	Background  string  `toml:"background"`
	Backend     string  `toml:"backend"`
	JPEGQuality int     `toml:"jpeg_quality"`
	Name        string  `toml:"name"`
	OutDir      string  `toml:"out"`
}

// Config is a parsed configuration file.
type Config struct {
	Defaults Defaults `toml:"defaults"`

	meta toml.MetaData
}

// LoadConfig reads the TOML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(IOFailure, "load config", path, err)
		}
		return nil, &Error{Kind: InvalidArgument, Op: "load config", Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &Error{Kind: InvalidArgument, Op: "load config", Path: path,
			Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	cfg.meta = md
	return cfg, nil
}

// IsSet reports whether key was present in the [defaults] section.
func (c *Config) IsSet(key string) bool {
	if c == nil {
		return false
	}
	return c.meta.IsDefined("defaults", key)
}

// ParseColor parses a hex color in the #rgb, #rrggbb or #rrggbbaa notation.
// The leading '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	invalid := &Error{Kind: InvalidArgument, Op: "parse color", Msg: fmt.Sprintf("invalid color %q", s)}

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, invalid
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, invalid
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

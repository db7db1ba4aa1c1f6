package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matt-g-everett/curve/easing"
	"gopkg.in/yaml.v2"
)

// Config is the application configuration read from YAML.
type Config struct {
	Mqtt       MqttConfig   `yaml:"mqtt"`
	Engine     EngineConfig `yaml:"engine"`
	Http       HttpConfig   `yaml:"http"`
	Strip      StripConfig  `yaml:"strip"`
	Animations []Fade       `yaml:"animations"`
}

// MqttConfig describes the broker the LED strip listens on.
type MqttConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientID"`
	Topics   struct {
		Stream    string `yaml:"stream"`
		Keyframes string `yaml:"keyframes"`
	} `yaml:"topics"`
}

// EngineConfig sets the live and pre-rendered frame rates.
type EngineConfig struct {
	FrameRate    float64 `yaml:"frameRate"`
	KeyframeRate float64 `yaml:"keyframeRate"`
}

// HttpConfig sets up the render API.
type HttpConfig struct {
	Addr   string `yaml:"addr"`
	Static string `yaml:"static"`
}

// StripConfig describes the LED strip.
type StripConfig struct {
	Pixels int `yaml:"pixels"`
}

// Fade is one step of the demo: the strip fades between two colours.
type Fade struct {
	From     string          `yaml:"from"`
	To       string          `yaml:"to"`
	Duration time.Duration   `yaml:"duration"`
	Delay    time.Duration   `yaml:"delay"`
	Easing   easing.Equation `yaml:"easing"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	c := new(Config)
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "curve"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Keyframes = "home/xmastree/keyframes"
	c.Engine.FrameRate = 30
	c.Engine.KeyframeRate = 60
	c.Http.Addr = ":3000"
	c.Http.Static = "client/dist"
	c.Strip.Pixels = 500
	c.Animations = []Fade{
		{From: "#000005", To: "#808080", Duration: 3 * time.Second, Easing: easing.CubicInOut()},
		{From: "#808080", To: "#100505", Duration: 2 * time.Second, Easing: easing.BounceOut()},
	}
	return c
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults. An empty document yields the
// defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	animations := c.Animations
	c.Animations = nil

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(c.Animations) == 0 {
		c.Animations = animations
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Engine.FrameRate <= 0 {
		return fmt.Errorf("engine.frameRate must be positive, got %v", c.Engine.FrameRate)
	}
	if c.Engine.KeyframeRate <= 0 {
		return fmt.Errorf("engine.keyframeRate must be positive, got %v", c.Engine.KeyframeRate)
	}
	if c.Strip.Pixels <= 0 || c.Strip.Pixels > 0xffff {
		return fmt.Errorf("strip.pixels out of range: %d", c.Strip.Pixels)
	}
	for i, f := range c.Animations {
		if f.Duration < 0 || f.Delay < 0 {
			return fmt.Errorf("animations[%d]: negative time", i)
		}
	}
	return nil
}

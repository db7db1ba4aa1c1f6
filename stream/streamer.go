package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/curve/config"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/tween"
)

// Publisher is the part of mqtt.Client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer streams RGB data frames to an ledrx device. Its Apply methods are
// meant to be used as animation callbacks.
type Streamer struct {
	client Publisher
	topics struct {
		stream    string
		keyframes string
	}

	mu    sync.Mutex
	frame *Frame
	dirty bool
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(client Publisher, cfg config.MqttConfig, numPixels int) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topics.stream = cfg.Topics.Stream
	s.topics.keyframes = cfg.Topics.Keyframes
	s.frame = NewFrame(numPixels)
	s.dirty = true
	return s
}

// Apply fills the strip with one colour.
func (s *Streamer) Apply(c tween.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Fill(c)
	s.dirty = true
}

// ApplyAll blends several colours evenly along the strip.
func (s *Streamer) ApplyAll(colours []tween.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.Blend(EvenGradient(colours))
	s.dirty = true
}

// CrossfadeTo captures the current frame and returns a Float animation
// callback that blends from it to target.
func (s *Streamer) CrossfadeTo(target *Frame) func(tween.Float) {
	from := s.Frame()
	return func(p tween.Float) {
		blended := from.InterpolateFrame(target, float64(p))
		s.mu.Lock()
		defer s.mu.Unlock()
		s.frame = blended
		s.dirty = true
	}
}

// Frame returns a copy of the current frame.
func (s *Streamer) Frame() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := NewFrame(s.frame.Len())
	copy(out.pixels, s.frame.pixels)
	return out
}

// SendFrame publishes the current frame if it changed since the last send.
func (s *Streamer) SendFrame() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	b, err := s.frame.MarshalBinary()
	s.dirty = false
	s.mu.Unlock()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topics.stream, 0, false, b)
	token.Wait()
	return token.Error()
}

// PublishKeyframes sends a pre-rendered colour animation for the device to
// play back on its own.
func (s *Streamer) PublishKeyframes(kf *curve.Keyframes[tween.Color]) error {
	b, err := json.Marshal(kf)
	if err != nil {
		return fmt.Errorf("encode keyframes: %w", err)
	}
	token := s.client.Publish(s.topics.keyframes, 1, true, b)
	token.Wait()
	return token.Error()
}

// Run sends frames every interval until ctx is done.
func (s *Streamer) Run(ctx context.Context, interval time.Duration) {
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				log.Printf("Send frame: %v", err)
			}
		}
	}
}

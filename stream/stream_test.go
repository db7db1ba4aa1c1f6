package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/curve/config"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/easing"
	"github.com/matt-g-everett/curve/tween"
)

type doneToken struct {
	mqtt.Token
	err error
}

func (t *doneToken) Wait() bool   { return true }
func (t *doneToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{topic, qos, retained, payload.([]byte)})
	return &doneToken{err: p.err}
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func testMqttConfig() config.MqttConfig {
	return config.Default().Mqtt
}

func TestFrameMarshalBinary(t *testing.T) {
	f := NewFrame(3)
	f.pixels[0] = colorful.Color{R: 1}
	f.pixels[1] = colorful.Color{G: 2}
	f.pixels[2] = colorful.Color{B: 0.5}

	b, err := f.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	expected := []byte{3, 0, 255, 0, 0, 0, 255, 0, 0, 0, 128}
	if string(b) != string(expected) {
		t.Errorf("Expected %v, got %v", expected, b)
	}

	var back Frame
	if err := back.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if back.Len() != 3 || back.Pixel(0).R != 1 || back.Pixel(1).G != 1 {
		t.Errorf("Unexpected frame %+v", back.pixels)
	}
}

func TestFrameUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Short header", []byte{1}},
		{"Truncated pixels", []byte{2, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Frame
			if err := f.UnmarshalBinary(tt.data); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestFrameFill(t *testing.T) {
	f := NewFrame(4)
	f.Fill(tween.Color{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 0.5})
	for i := 0; i < f.Len(); i++ {
		if f.Pixel(i).R != 0.5 {
			t.Fatalf("Pixel %d not premultiplied: %+v", i, f.Pixel(i))
		}
	}
}

func TestGradientAt(t *testing.T) {
	red := tween.NewColor(colorful.Color{R: 1})
	green := tween.NewColor(colorful.Color{G: 1})
	blue := tween.NewColor(colorful.Color{B: 1})
	g := EvenGradient([]tween.Color{red, green, blue})

	tests := []struct {
		name     string
		t        float64
		expected colorful.Color
	}{
		{"Before start", -1, colorful.Color{R: 1}},
		{"Start", 0, colorful.Color{R: 1}},
		{"First quarter", 0.25, colorful.Color{R: 0.5, G: 0.5}},
		{"Middle stop", 0.5, colorful.Color{G: 1}},
		{"End", 1, colorful.Color{B: 1}},
		{"Past end", 2, colorful.Color{B: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := g.At(tt.t).Color; c != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, c)
			}
		})
	}

	single := EvenGradient([]tween.Color{green})
	if c := single.At(0.7).Color; c != green.Color {
		t.Errorf("Expected a single stop to fill, got %+v", c)
	}
}

func TestApplyAllBlends(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 5)
	s.ApplyAll([]tween.Color{
		tween.NewColor(colorful.Color{R: 1}),
		tween.NewColor(colorful.Color{B: 1}),
	})

	f := s.Frame()
	if f.Pixel(0).R != 1 || f.Pixel(4).B != 1 {
		t.Errorf("Unexpected ends %+v %+v", f.Pixel(0), f.Pixel(4))
	}
	if mid := f.Pixel(2); mid.R != 0.5 || mid.B != 0.5 {
		t.Errorf("Unexpected midpoint %+v", mid)
	}
}

func TestInterpolateFrame(t *testing.T) {
	a := NewFrame(2)
	b := NewFrame(2)
	b.Fill(tween.NewColor(colorful.Color{R: 1, G: 0.5}))

	mid := a.InterpolateFrame(b, 0.5)
	if mid.Pixel(1).R != 0.5 || mid.Pixel(1).G != 0.25 {
		t.Errorf("Unexpected midpoint %+v", mid.Pixel(1))
	}
}

func TestInterpolateFrameShorterTarget(t *testing.T) {
	a := NewFrame(3)
	a.Fill(tween.NewColor(colorful.Color{B: 1}))
	b := NewFrame(1)
	b.Fill(tween.NewColor(colorful.Color{R: 1}))

	out := a.InterpolateFrame(b, 1)
	if out.Pixel(0).R != 1 || out.Pixel(2).B != 1 {
		t.Errorf("Unexpected frame %+v", out.pixels)
	}
}

func TestCrossfadeTo(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 4)
	s.Apply(tween.NewColor(colorful.Color{R: 1}))

	target := NewFrame(4)
	target.Fill(tween.NewColor(colorful.Color{G: 1}))

	clk := clock.NewMock()
	sch := curve.NewScheduler(clk, nil)
	a := curve.From[tween.Float](0, 1, time.Second)
	a.Run(sch, curve.Options[tween.Float]{OnChange: s.CrossfadeTo(target)})

	sch.OnFrame(clk.Now().Add(250 * time.Millisecond))
	if p := s.Frame().Pixel(3); p.R != 0.75 || p.G != 0.25 {
		t.Errorf("Expected a quarter of the way, got %+v", p)
	}
	if err := s.SendFrame(); err != nil || pub.count() != 1 {
		t.Fatalf("Expected the blended frame to be sent, err %v count %d", err, pub.count())
	}

	sch.OnFrame(clk.Now().Add(time.Second))
	if p := s.Frame().Pixel(0); p != (colorful.Color{G: 1}) {
		t.Errorf("Expected the target colour, got %+v", p)
	}
	if a.State() != curve.Completed {
		t.Errorf("Expected completion, got %v", a.State())
	}
}

func TestSendFrameOnlyWhenDirty(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 10)

	for i := 0; i < 3; i++ {
		if err := s.SendFrame(); err != nil {
			t.Fatalf("SendFrame failed: %v", err)
		}
	}
	if pub.count() != 1 {
		t.Fatalf("Expected the initial frame only, got %d sends", pub.count())
	}

	s.Apply(tween.NewColor(colorful.Color{G: 1}))
	if err := s.SendFrame(); err != nil {
		t.Fatalf("SendFrame failed: %v", err)
	}
	if pub.count() != 2 {
		t.Fatalf("Expected 2 sends, got %d", pub.count())
	}

	last := pub.sent[1]
	if last.topic != "home/xmastree/stream" || last.qos != 0 || last.retained {
		t.Errorf("Unexpected publish %+v", last)
	}
	if len(last.payload) != 2+10*3 || last.payload[3] != 255 {
		t.Errorf("Unexpected payload %v", last.payload)
	}
}

func TestSendFrameError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	s := NewStreamer(pub, testMqttConfig(), 1)
	if err := s.SendFrame(); err == nil {
		t.Error("Expected the token error")
	}
}

func TestStreamerAsAnimationCallback(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 5)

	from := tween.NewColor(colorful.Color{})
	to := tween.NewColor(colorful.Color{R: 1})
	a := curve.From(from, to, time.Second)

	clk := clock.NewMock()
	start := clk.Now()
	sch := curve.NewScheduler(clk, nil)
	a.Run(sch, curve.Options[tween.Color]{OnChange: s.Apply})
	a.Tick(start.Add(500 * time.Millisecond))

	if r := s.Frame().Pixel(4).R; r != 0.5 {
		t.Errorf("Expected red 0.5, got %v", r)
	}
}

func TestPublishKeyframes(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 5)

	a := curve.From(tween.NewColor(colorful.Color{}), tween.NewColor(colorful.Color{B: 1}), time.Second)
	kf := a.Render(curve.RenderOptions{Easing: easing.Linear(), Rate: 4})
	if err := s.PublishKeyframes(kf); err != nil {
		t.Fatalf("PublishKeyframes failed: %v", err)
	}

	msg := pub.sent[0]
	if msg.topic != "home/xmastree/keyframes" || msg.qos != 1 || !msg.retained {
		t.Errorf("Unexpected publish %+v", msg)
	}

	var decoded struct {
		Duration float64 `json:"duration"`
		Frames   []struct {
			Time   float64 `json:"time"`
			Values []struct {
				Hex string `json:"hex"`
			} `json:"values"`
		} `json:"frames"`
	}
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Duration != 1 || len(decoded.Frames) != 5 {
		t.Fatalf("Unexpected keyframes %+v", decoded)
	}
	if hex := decoded.Frames[4].Values[0].Hex; hex != "#0000ff" {
		t.Errorf("Expected #0000ff at the end, got %s", hex)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	pub := new(fakePublisher)
	s := NewStreamer(pub, testMqttConfig(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.After(time.Second)
	for pub.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("No frame sent")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

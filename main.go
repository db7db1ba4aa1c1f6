package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/matt-g-everett/curve/api"
	"github.com/matt-g-everett/curve/audio"
	"github.com/matt-g-everett/curve/config"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/easing"
	"github.com/matt-g-everett/curve/stream"
	"github.com/matt-g-everett/curve/term"
	"github.com/matt-g-everett/curve/tween"
)

type fade struct {
	from, to tween.Color
	config.Fade
}

type app struct {
	Config    *config.Config
	Client    mqtt.Client
	Streamer  *stream.Streamer
	Scheduler *curve.Scheduler
	Preview   *term.Preview

	fades []fade
	next  int
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) readConfig(configPath string) {
	c, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = c

	for _, f := range c.Animations {
		from, err := tween.ParseColor(f.From)
		if err != nil {
			panic(err)
		}
		to, err := tween.ParseColor(f.To)
		if err != nil {
			panic(err)
		}
		a.fades = append(a.fades, fade{from: from, to: to, Fade: f})
	}
}

func (a *app) applyColour(c tween.Color) {
	a.Streamer.Apply(c)
	if a.Preview != nil {
		a.Preview.SetColor(c)
	}
}

// intro crossfades the strip from whatever it shows to the first fade's start
// colour, then starts the playlist.
func (a *app) intro() {
	target := stream.NewFrame(a.Config.Strip.Pixels)
	target.Fill(a.fades[0].from)
	curve.From[tween.Float](0, 1, time.Second).Run(a.Scheduler, curve.Options[tween.Float]{
		Easing:   easing.SineInOut(),
		OnChange: a.Streamer.CrossfadeTo(target),
		OnComplete: func(bool) {
			a.playNext()
		},
	})
}

// playNext runs the next fade in the playlist and loops back to the first
// when the last one completes.
func (a *app) playNext() {
	f := a.fades[a.next]
	a.next = (a.next + 1) % len(a.fades)

	colour := curve.From(f.from, f.to, f.Duration)
	kf := colour.Render(curve.RenderOptions{Easing: f.Easing, Rate: a.Config.Engine.KeyframeRate})
	if err := a.Streamer.PublishKeyframes(kf); err != nil {
		log.Printf("Publish keyframes: %v", err)
	}

	log.Printf("Fading %s -> %s over %v (%v)", f.From, f.To, f.Duration, f.Easing)
	colour.Run(a.Scheduler, curve.Options[tween.Color]{
		Easing:   f.Easing,
		Delay:    f.Delay,
		OnChange: a.applyColour,
		OnComplete: func(success bool) {
			if success {
				a.playNext()
			}
		},
	})

	if a.Preview != nil {
		level := curve.From[tween.Float](0, 1, f.Duration)
		level.Run(a.Scheduler, curve.Options[tween.Float]{Easing: f.Easing, Delay: f.Delay, OnChange: a.Preview.SetLevel})
		marker := curve.From(tween.Point{X: 2, Y: 2}, tween.Point{X: 40, Y: 12}, f.Duration)
		marker.Run(a.Scheduler, curve.Options[tween.Point]{Easing: f.Easing, Delay: f.Delay, OnChange: a.Preview.SetPoint})
	}
}

// writeTone renders the first fade's easing as a volume swell from its
// keyframes, then fades back out live on a scheduler that follows the audio
// stream's own clock.
func (a *app) writeTone(path string) {
	f := a.fades[0]
	rate := beep.SampleRate(44100)
	gain := curve.From[tween.Float](0, 1, f.Duration)
	kf := gain.Render(curve.RenderOptions{Easing: f.Easing, Rate: a.Config.Engine.KeyframeRate})

	swell, err := audio.Tone(440, f.Duration, rate)
	if err != nil {
		panic(err)
	}
	tail, err := audio.Tone(440, f.Duration, rate)
	if err != nil {
		panic(err)
	}

	clk := clock.NewMock()
	sch := curve.NewScheduler(clk, nil)
	fader := audio.NewFader(tail, 1)
	curve.From[tween.Float](1, 0, f.Duration).Run(sch, curve.Options[tween.Float]{Easing: f.Easing, OnChange: fader.SetGain})

	out, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer out.Close()

	s := beep.Seq(
		audio.Automate(swell, kf, rate),
		audio.Stepped(fader, sch, clk, rate, a.Config.Engine.FrameRate),
	)
	if err := wav.Encode(out, s, beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}); err != nil {
		panic(err)
	}
	log.Printf("Wrote %s", path)
}

func (a *app) run(ctx context.Context, preview bool) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}

	go func() {
		if err := api.NewServer(a.Config.Http, a.Config.Engine).Serve(); err != nil {
			log.Printf("API stopped: %v", err)
		}
	}()

	interval := time.Duration(float64(time.Second) / a.Config.Engine.FrameRate)
	go a.Streamer.Run(ctx, interval)

	if preview {
		screen, err := tcell.NewScreen()
		if err != nil {
			panic(err)
		}
		if err := screen.Init(); err != nil {
			panic(err)
		}
		defer screen.Fini()
		a.Preview = term.NewPreview(screen)
	}

	a.Scheduler.Post(a.intro)
	a.Scheduler.Start()
	defer a.Scheduler.Stop()

	if a.Preview != nil {
		a.Preview.Run(ctx, interval)
		return
	}
	<-ctx.Done()
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	preview := flag.Bool("preview", false, "Preview the animation in the terminal.")
	tonePath := flag.String("wav", "", "Write the first fade as a WAV volume swell and fall, then exit.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	if !*preview {
		log.Printf("Config: %+v", a.Config)
	}

	if *tonePath != "" {
		a.writeTone(*tonePath)
		return
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Client, a.Config.Mqtt, a.Config.Strip.Pixels)
	clk := clock.New()
	a.Scheduler = curve.NewScheduler(clk, curve.TickerSource{Rate: a.Config.Engine.FrameRate, Clock: clk})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a.run(ctx, *preview)
}

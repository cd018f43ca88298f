package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/Lighty0410/autexousious/internal/appstate"
	"github.com/Lighty0410/autexousious/internal/asset"
	"github.com/Lighty0410/autexousious/internal/character"
	"github.com/Lighty0410/autexousious/internal/config"
	"github.com/Lighty0410/autexousious/internal/event"
	"github.com/Lighty0410/autexousious/internal/game"
	"github.com/Lighty0410/autexousious/internal/gamemap"
	"github.com/Lighty0410/autexousious/internal/input"
	"github.com/Lighty0410/autexousious/internal/logger"
	"github.com/Lighty0410/autexousious/internal/object"
	"github.com/Lighty0410/autexousious/internal/session"
	"github.com/Lighty0410/autexousious/internal/stdio"
)

func main() {
	var (
		configPath  = flag.String("config", "configs/config.yaml", "path to the configuration file")
		frameRate   = flag.Int("frame_rate", 0, "simulation ticks per second, overrides the configured rate")
		assetsDir   = flag.String("assets", "", "asset directory, overrides the configured one")
		characterID = flag.String("character", "", "character slug to play, e.g. default/heat")
		mapID       = flag.String("map", "", "map slug to play on, e.g. default/training_room")
		sessionHost = flag.Bool("session_host", false, "host a netplay session")
		sessionJoin = flag.String("session_join", "", "join a netplay session by code")
		minDevices  = flag.Int("session_devices", 2, "device count the host waits for before starting")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *frameRate > 0 {
		cfg.Game.FrameRate = *frameRate
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		File:   cfg.Logging.File,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *characterID, *mapID, *sessionHost, session.SessionCode(*sessionJoin), *minDevices); err != nil {
		slog.Error("Exiting with error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		// No config file is fine; flags and defaults cover everything.
		return config.Default(), nil
	}
	return cfg, err
}

func run(ctx context.Context, cfg *config.Config, characterID, mapID string, host bool, joinCode session.SessionCode, minDevices int) error {
	// Asset load failures halt the application before play begins.
	index, err := asset.LoadIndex(cfg.Assets.Dir)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}
	watcher, err := asset.NewWatcher(index)
	if err != nil {
		slog.Warn("Asset hot reload unavailable", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	charDef, err := pickCharacter(index, characterID)
	if err != nil {
		return err
	}
	mapDef, err := pickMap(index, mapID)
	if err != nil {
		return err
	}

	bus := event.NewBus()
	machine := appstate.NewMachine(bus)
	inputs := input.NewBuffer()
	dispatcher := stdio.NewDispatcher(stdio.NewReader(os.Stdin), machine, inputs, bus)

	bus.Subscribe(event.EventKnockout, func(raw any) {
		ev := raw.(event.KnockoutEvent)
		slog.Info("Knockout", "entity", ev.Entity, "tick", ev.Tick)
	})

	netplay := host || joinCode != ""
	var beforeStep game.BeforeStepFunc
	g := game.New(bus, inputs, mapDef)

	if netplay {
		beforeStep, err = setupNetplay(ctx, cfg, g, charDef, bus, machine, dispatcher, inputs, host, joinCode, minDevices)
		if err != nil {
			return err
		}
	} else {
		beforeStep = setupLocal(g, charDef, mapDef, machine, dispatcher)
	}

	err = g.Run(ctx, cfg.Game.FrameRate, beforeStep)
	// Exit command and signal shutdown are both clean exits.
	if errors.Is(err, stdio.ErrExit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// setupLocal walks the selection states and spawns two locally
// controlled characters.
func setupLocal(g *game.Game, charDef *character.Definition, mapDef *gamemap.Definition, machine *appstate.Machine, dispatcher *stdio.Dispatcher) game.BeforeStepFunc {
	for _, state := range []appstate.StateID{
		appstate.CharacterSelection,
		appstate.MapSelection,
		appstate.Loading,
	} {
		machine.Request(state)
		machine.Apply()
	}

	spawnX := (mapDef.Margins.Left + mapDef.Margins.Right) / 2
	_ = g.AddCharacter(charDef, 0, object.Position{X: spawnX - 60})
	right := g.AddCharacter(charDef, 1, object.Position{X: spawnX + 60})
	right.Mirrored = true

	machine.Request(appstate.GamePlay)

	return func(ctx context.Context, tick uint64) error {
		machine.Apply()
		return dispatcher.BeforeStep(ctx, tick)
	}
}

// setupNetplay hosts or joins a session and returns a lockstep
// before-step hook: tick N runs only once every device's tick N input
// has arrived.
func setupNetplay(ctx context.Context, cfg *config.Config, g *game.Game, charDef *character.Definition, bus *event.Bus, machine *appstate.Machine, dispatcher *stdio.Dispatcher, inputs *input.Buffer, host bool, joinCode session.SessionCode, minDevices int) (game.BeforeStepFunc, error) {
	url := fmt.Sprintf("ws://%s/session", cfg.Session.ServerAddr)
	client, err := session.Dial(ctx, url)
	if err != nil {
		return nil, err
	}

	if host {
		code, err := client.Host(cfg.Session.DeviceName)
		if err != nil {
			return nil, err
		}
		slog.Info("Waiting for devices to join", "code", code, "devices", minDevices)
	} else {
		if _, err := client.Join(joinCode, cfg.Session.DeviceName); err != nil {
			return nil, err
		}
	}
	bus.Publish(event.EventSessionJoined, event.SessionDeviceEvent{
		SessionCode: string(client.Code()),
		DeviceID:    int(client.DeviceID()),
		DeviceName:  cfg.Session.DeviceName,
	})
	machine.Request(appstate.SessionLobby)
	machine.Apply()

	listenDone := make(chan error, 1)
	go func() { listenDone <- client.Listen(ctx) }()

	if host {
		for waiting := true; waiting; {
			select {
			case devices := <-client.Lobby:
				slog.Info("Lobby update", "devices", len(devices))
				if len(devices) >= minDevices {
					if err := client.Start(); err != nil {
						return nil, err
					}
					waiting = false
				}
			case err := <-listenDone:
				return nil, fmt.Errorf("session closed before start: %w", err)
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	var devices []session.Device
	select {
	case devices = <-client.Started:
	case reason := <-client.Ended:
		return nil, fmt.Errorf("session ended before start: %s", reason)
	case err := <-listenDone:
		return nil, fmt.Errorf("session closed before start: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	slog.Info("Session started", "devices", len(devices))
	bus.Publish(event.EventSessionStarted, event.SessionDeviceEvent{
		SessionCode: string(client.Code()),
		DeviceID:    int(client.DeviceID()),
		DeviceName:  cfg.Session.DeviceName,
	})

	machine.Request(appstate.Loading)
	machine.Apply()

	// One character per device; device IDs double as controller IDs.
	for i, dev := range devices {
		e := g.AddCharacter(charDef, input.ControllerID(dev.ID), object.Position{X: float64(200 + 120*i)})
		e.Mirrored = i%2 == 1
	}

	isync := session.NewInputSync(devices)
	// The input stream closes on session teardown; cancelling the play
	// context unblocks a tick waiting on inputs that will never come.
	playCtx, stopPlay := context.WithCancel(ctx)
	go func() {
		defer stopPlay()
		for tick := range client.Inputs {
			isync.Put(tick)
		}
	}()

	local := input.ControllerID(client.DeviceID())
	machine.Request(appstate.GamePlay)

	return func(ctx context.Context, tick uint64) error {
		machine.Apply()
		if err := dispatcher.BeforeStep(ctx, tick); err != nil {
			return err
		}
		if err := client.SendInput(tick, inputs.Staged(local)); err != nil {
			return err
		}
		ticks, err := isync.WaitTick(playCtx, tick)
		if err != nil {
			select {
			case reason := <-client.Ended:
				return fmt.Errorf("session ended: %s", reason)
			default:
			}
			if ctx.Err() == nil {
				return errors.New("session connection closed")
			}
			return err
		}
		for dev, in := range ticks {
			inputs.Stage(input.ControllerID(dev), in)
		}
		return nil
	}, nil
}

func pickCharacter(index *asset.Index, raw string) (*character.Definition, error) {
	if raw != "" {
		slug, err := asset.ParseSlug(raw)
		if err != nil {
			return nil, err
		}
		def, ok := index.Character(slug)
		if !ok {
			return nil, fmt.Errorf("character %s not found", slug)
		}
		return def, nil
	}
	slugs := index.CharacterSlugs()
	sort.Slice(slugs, func(i, j int) bool { return slugs[i].String() < slugs[j].String() })
	def, _ := index.Character(slugs[0])
	slog.Info("Character selected", "slug", slugs[0])
	return def, nil
}

func pickMap(index *asset.Index, raw string) (*gamemap.Definition, error) {
	if raw != "" {
		slug, err := asset.ParseSlug(raw)
		if err != nil {
			return nil, err
		}
		def, ok := index.Map(slug)
		if !ok {
			return nil, fmt.Errorf("map %s not found", slug)
		}
		return def, nil
	}
	slugs := index.MapSlugs()
	sort.Slice(slugs, func(i, j int) bool { return slugs[i].String() < slugs[j].String() })
	def, _ := index.Map(slugs[0])
	slog.Info("Map selected", "slug", slugs[0])
	return def, nil
}

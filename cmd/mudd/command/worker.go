package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/RednibCoding/mudden-sub004/internal/distributor"
	"github.com/RednibCoding/mudden-sub004/internal/engine"
	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/handlers"
	"github.com/RednibCoding/mudden-sub004/internal/listener"
	"github.com/RednibCoding/mudden-sub004/internal/queue"
	"github.com/RednibCoding/mudden-sub004/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load world assets
	rooms, err := cfg.Storage.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	npcs, err := cfg.Storage.Npcs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}
	chars, err := cfg.Storage.Characters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}

	world, err := game.NewWorldState(rooms, items, npcs, cfg.World.DefaultRoom, cfg.World.carryLimit())
	if err != nil {
		return nil, fmt.Errorf("creating world state: %w", err)
	}

	// Create the message broker
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Set up the simulation pipeline
	q := queue.NewCommandQueue()

	proc := engine.NewProcessor(world)
	h, err := handlers.New(world)
	if err != nil {
		return nil, fmt.Errorf("creating handlers: %w", err)
	}
	err = h.RegisterAll(proc)
	if err != nil {
		return nil, fmt.Errorf("registering handlers: %w", err)
	}

	dist := distributor.NewDistributor(nats)

	var schedOpts []engine.SchedulerOpt
	if d := cfg.tickInterval(); d > 0 {
		schedOpts = append(schedOpts, engine.WithTickInterval(d))
	}
	sched := engine.NewScheduler(q, proc, dist, schedOpts...)

	// Bind connections to players
	reg := session.NewRegistry(world, chars, q, nats)
	cm := listener.NewConnectionManager(reg)

	// Create listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      nats,
		"scheduler": sched,
		"listeners": &listeners,
	}, nil
}

// Package main provides the skirmish binary: it loads content, places a
// player and a band of monsters in an arena and fights it out round by round.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/loot"
	"github.com/cory-johannsen/delve/internal/game/lore"
	"github.com/cory-johannsen/delve/internal/narrate"
	"github.com/cory-johannsen/delve/internal/observability"
	"github.com/cory-johannsen/delve/internal/scripting"
	"github.com/cory-johannsen/delve/internal/skirmish"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	playerID := flag.String("player", "hero", "player spec file name (without .yaml) in the players directory")
	monsters := flag.String("monsters", "cave_orc", "comma-separated race IDs to spawn against the player")
	seed := flag.Uint64("seed", 0, "dice seed; overrides combat.seed when non-zero")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Combat.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src dice.Source
	if cfg.Combat.Seed != 0 {
		src = dice.NewSeededSource(cfg.Combat.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	stream := dice.NewStream(src, observability.Component(logger, "dice", cfg.Combat.Seed))

	conds := condition.DefaultRegistry()
	if cfg.Content.ConditionsDir != "" {
		if conds, err = condition.LoadDirectory(cfg.Content.ConditionsDir); err != nil {
			logger.Fatal("loading conditions", zap.Error(err))
		}
	}
	races, err := actor.LoadRaces(cfg.Content.RacesDir)
	if err != nil {
		logger.Fatal("loading races", zap.Error(err))
	}
	weapons, err := actor.LoadWeapons(cfg.Content.WeaponsDir)
	if err != nil {
		logger.Fatal("loading weapons", zap.Error(err))
	}
	spec, err := actor.LoadPlayerSpec(filepath.Join(cfg.Content.PlayersDir, *playerID+".yaml"))
	if err != nil {
		logger.Fatal("loading player", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("races", len(races)),
		zap.Int("weapons", len(weapons)),
		zap.Int("conditions", len(conds.All())),
		zap.Duration("elapsed", time.Since(start)),
	)

	scripts := scripting.NewManager(observability.Component(logger, "scripting", 0))
	defer scripts.Close()
	if cfg.Content.ScriptsDir != "" {
		if err := scripts.Load(cfg.Content.ScriptsDir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
	}

	reg := actor.NewRegistry(conds)
	field, err := arena.New(cfg.Arena.Width, cfg.Arena.Height, reg, observability.Component(logger, "arena", 0))
	if err != nil {
		logger.Fatal("creating arena", zap.Error(err))
	}

	player, err := actor.NewPlayer(spec, weapons, conds)
	if err != nil {
		logger.Fatal("building player", zap.Error(err))
	}
	player.Pos = actor.Pos{X: cfg.Arena.Width / 2, Y: cfg.Arena.Height / 2}
	if err := reg.Add(player); err != nil {
		logger.Fatal("placing player", zap.Error(err))
	}

	memory := lore.NewStore()
	var ids []string
	for i, raceID := range strings.Split(*monsters, ",") {
		race, ok := races[strings.TrimSpace(raceID)]
		if !ok {
			logger.Fatal("unknown race", zap.String("race", raceID))
		}
		pos := actor.Pos{X: player.Pos.X + 1 + i%2, Y: player.Pos.Y - 1 + i/2}
		m, err := reg.Spawn(race, pos)
		if err != nil {
			logger.Fatal("spawning monster", zap.String("race", race.ID), zap.Error(err))
		}
		memory.RecordSighting(race.ID)
		ids = append(ids, m.ID)
	}

	catalog, err := narrate.DefaultCatalog()
	if err != nil {
		logger.Fatal("loading narration", zap.Error(err))
	}
	narrator, err := narrate.NewNarrator(catalog, cfg.Combat.Locale, narrate.WriterSink{W: os.Stdout})
	if err != nil {
		logger.Fatal("creating narrator", zap.Error(err))
	}

	clock := &skirmish.Clock{}
	engine := combat.NewEngine(combat.Deps{
		Stream:    stream,
		Registry:  reg,
		Lore:      memory,
		Messages:  narrator,
		Projector: field,
		Quaker:    field,
		Displacer: field,
		Death:     loot.NewGenerator(field, scripts, observability.Component(logger, "loot", 0)),
		Logger:    observability.Component(logger, "combat", cfg.Combat.Seed),
		Clock:     clock.Now,
	}, combat.Options{
		ArenaBattle:    cfg.Combat.ArenaBattle,
		MaxPlayerBlows: cfg.Combat.MaxPlayerBlows,
	})

	sk, err := skirmish.New(engine, reg, clock, narrator, logger, player.ID, ids...)
	if err != nil {
		logger.Fatal("creating skirmish", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sk.Run(ctx, cfg.Combat.Rounds)
	if err != nil {
		logger.Error("skirmish aborted", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("skirmish finished",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("rounds", res.Rounds),
		zap.Int("player_hp", res.PlayerHP),
		zap.Strings("slain", res.Slain),
		zap.Int("draws", stream.Draws()),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Printf("%s after %d rounds (%d draws)\n", res.Outcome, res.Rounds, stream.Draws())
}

// Command neatctl drives a Pool through generations against a game
// collaborator. It ships with an in-memory stand-in adapter so the engine
// can be exercised end to end without a real game window — wiring a real
// GameAdapter only means satisfying driver.GameAdapter.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fenwick-ai/neatroids/driver"
	"github.com/fenwick-ai/neatroids/neat"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("neatctl", flag.ExitOnError)
	configPath := fs.String("config", "", "path to an ini config file (defaults baked in if omitted)")
	generations := fs.Int("generations", 5, "number of generations to run before exiting")
	loadPath := fs.String("load", "", "resume from a pool.json/backupN.json snapshot")
	saveDir := fs.String("save-dir", ".", "directory to write pool.json into on exit")
	playTop := fs.Bool("play-top", false, "after training, run 600 frames starting with an episode of the best genome")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := neat.DefaultConfig()
	if *configPath != "" {
		loaded, err := neat.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	inputSize := uint32(cfg.BoardW * cfg.BoardH)
	rng := neat.NewRng(cfg.Seed)
	adapter := newFakeGame(inputSize)

	var pool *neat.Pool
	var d *driver.Driver
	var err error
	if *loadPath != "" {
		d, err = driver.LoadDriver(*loadPath, cfg, rng, inputSize, adapter)
		if err != nil {
			return fmt.Errorf("load pool: %w", err)
		}
		pool = d.Pool
	} else {
		pool = neat.NewPool(cfg, rng, inputSize)
		pool.Init()
		d, err = driver.NewDriver(pool, adapter)
		if err != nil {
			return fmt.Errorf("start driver: %w", err)
		}
	}

	fmt.Printf("Info: starting training, target generation %d\n", pool.Generation+uint32(*generations))
	target := pool.Generation + uint32(*generations)
	for pool.Generation < target {
		if err := d.Process(); err != nil {
			return fmt.Errorf("process frame: %w", err)
		}
	}

	if err := neat.SavePool(pool, *saveDir); err != nil {
		return fmt.Errorf("save pool: %w", err)
	}

	if *playTop {
		fmt.Println("Info: showcasing top genome")
		if err := d.PlayTop(); err != nil {
			return fmt.Errorf("play top: %w", err)
		}
		for i := 0; i < 600; i++ {
			if err := d.Process(); err != nil {
				return fmt.Errorf("process showcase frame: %w", err)
			}
		}
	}

	return nil
}

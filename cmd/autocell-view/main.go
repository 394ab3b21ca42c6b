//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"autocell/internal/app"
	"autocell/internal/config"
	_ "autocell/internal/sims/briansbrain"
	_ "autocell/internal/sims/elementary"
	_ "autocell/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log.SetPrefix("autocell-view: ")
	log.SetFlags(0)

	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	file := flag.String("config", "", "YAML run file; explicit flags override it")
	flag.Parse()

	if *file != "" {
		if err := cfg.ApplyFile(*file, flag.CommandLine); err != nil {
			log.Fatal(err)
		}
	}
	eng, err := cfg.NewEngine()
	if err != nil {
		log.Fatalf("build automaton: %v", err)
	}

	game := app.New(eng, cfg.Preset, cfg.Scale, cfg.TPS)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("autocell")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

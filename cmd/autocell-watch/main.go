package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"autocell/internal/app"
	"autocell/internal/config"
	_ "autocell/internal/sims/briansbrain"
	_ "autocell/internal/sims/elementary"
	_ "autocell/internal/sims/life"
	"autocell/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	log.SetPrefix("autocell-watch: ")
	log.SetFlags(0)

	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	file := flag.String("config", "", "YAML run file; explicit flags override it")
	mono := flag.Bool("mono", false, "draw cells as glyphs instead of colours")
	rows := flag.Int("trail", 40, "generations kept on screen for 1D automata")
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("open terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := term.New(screen, app.NewView(eng, cfg.TPS, *rows))
	if *mono {
		v.SetMono(true)
	}
	err = v.Run(ctx)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

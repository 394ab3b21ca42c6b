package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"autocell/internal/config"
	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/format"
	_ "autocell/internal/sims/briansbrain"
	_ "autocell/internal/sims/elementary"
	_ "autocell/internal/sims/life"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

const usage = `usage: autocell [flags] action...

Actions run in order against every automaton:
  step      advance -steps generations, or each run file's steps
  undo      step back one generation
  reset     return to the initial states
  print     write the grid states
  describe  write the run parameters
  save      write -save-grid and -save-rules
  presets   list the registered rule presets

Flags:
`

func main() {
	log.SetPrefix("autocell: ")
	log.SetFlags(0)

	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	var configs kvList
	flag.Var(&configs, "config", "YAML run file describing one automaton and its steps (repeatable)")
	saveGrid := flag.String("save-grid", "", "grid file written by the save action")
	saveRules := flag.String("save-rules", "", "rule file written by the save action")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	actions := flag.Args()
	if len(actions) == 0 {
		actions = []string{"step", "print"}
	}

	h := engine.NewHandler()
	var steps []int
	if len(configs) == 0 {
		e, err := cfg.NewEngine()
		if err != nil {
			log.Fatalf("build automaton: %v", err)
		}
		h.Add(e)
		steps = append(steps, cfg.Steps)
	}
	for _, path := range configs {
		c, err := config.LoadFile(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		e, err := c.NewEngine()
		if err != nil {
			log.Fatalf("%s: build automaton: %v", path, err)
		}
		h.Add(e)
		steps = append(steps, c.Steps)
	}

	r := runner{handler: h, steps: steps, saveGrid: *saveGrid, saveRules: *saveRules}
	for _, action := range actions {
		if err := r.run(action); err != nil {
			log.Fatalf("%s: %v", action, err)
		}
	}
}

// runner applies actions to every automaton. steps is indexed like handler.
type runner struct {
	handler   *engine.Handler
	steps     []int
	saveGrid  string
	saveRules string
}

func (r runner) run(action string) error {
	switch action {
	case "step":
		r.handler.Each(func(i int, e *engine.Engine) { e.Step(r.steps[i]) })
	case "undo":
		var errs []error
		r.handler.Each(func(i int, e *engine.Engine) {
			if err := e.Undo(); err != nil {
				errs = append(errs, fmt.Errorf("automaton %d: %w", i, err))
			}
		})
		if err := errors.Join(errs...); err != nil {
			if errors.Is(err, core.ErrNoHistory) {
				log.Printf("undo: %v", err)
				return nil
			}
			return err
		}
	case "reset":
		r.handler.Each(func(_ int, e *engine.Engine) { e.Reset() })
	case "print":
		var err error
		r.handler.Each(func(i int, e *engine.Engine) {
			if err != nil {
				return
			}
			r.header(i)
			err = e.Grid().Print(os.Stdout)
		})
		return err
	case "describe":
		r.handler.Each(func(i int, e *engine.Engine) {
			r.header(i)
			for _, group := range e.Parameters().Groups {
				fmt.Printf("%s\n", group.Name)
				for _, p := range group.Params {
					fmt.Printf("  %-16s %s\n", p.Label, p.Value)
				}
			}
			for idx, rl := range e.Rules() {
				fmt.Printf("  rule %-3d %v\n", idx, rl)
			}
		})
	case "save":
		if r.saveGrid == "" && r.saveRules == "" {
			return errors.New("set -save-grid and/or -save-rules")
		}
		var err error
		r.handler.Each(func(i int, e *engine.Engine) {
			if err != nil {
				return
			}
			if r.saveGrid != "" {
				if err = format.SaveGrid(r.path(r.saveGrid, i), e.Grid()); err != nil {
					return
				}
			}
			if r.saveRules != "" {
				err = format.SaveRules(r.path(r.saveRules, i), e.Rules())
			}
		})
		return err
	case "presets":
		for _, name := range engine.PresetNames() {
			fmt.Println(name)
		}
	default:
		return errors.New("unknown action, see -h")
	}
	return nil
}

func (r runner) header(i int) {
	if r.handler.Len() > 1 {
		fmt.Printf("== automaton %d ==\n", i)
	}
}

// path suffixes the index when several automata share one output name.
func (r runner) path(name string, i int) string {
	if r.handler.Len() == 1 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i, ext)
}

// Command stackfall plays the falling-block game in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/stackfall/cmd/internal/launch"
	"github.com/plus3/stackfall/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	var flags launch.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load()
	if err == nil {
		err = flags.Apply(&cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "stackfall: %v\n", err)
		return 2
	}

	env, err := launch.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stackfall: %v\n", err)
		return 1
	}
	defer env.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stackfall: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "stackfall: %v\n", err)
		return 1
	}
	defer screen.Fini()

	snd := newSound(cfg.Sound, env.Log)
	defer snd.close()

	loop := env.NewLoop()
	loop.Subscribe(snd.observe)
	a := newApp(screen, loop, env.Keeper, env.Log, launch.Locale())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		env.Log.WithError(err).Error("terminal frontend stopped")
		return 1
	}
	env.Log.Info("bye")
	return 0
}

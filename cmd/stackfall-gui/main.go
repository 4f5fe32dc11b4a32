// Command stackfall-gui plays the falling-block game in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

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
		fmt.Fprintf(os.Stderr, "stackfall-gui: %v\n", err)
		return 2
	}

	env, err := launch.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stackfall-gui: %v\n", err)
		return 1
	}
	defer env.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("stackfall")

	loop := env.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	if err := ebiten.RunGame(newGUI(loop, env.Keeper, env.Log, launch.Locale())); err != nil && !errors.Is(err, ebiten.Termination) {
		env.Log.WithError(err).Error("window closed with error")
		return 1
	}
	return 0
}

package main

import (
	"os"
	"time"

	"playground3d/internal/game"
	"playground3d/internal/world"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CLI struct {
	Scene  string `help:"YAML scene file overriding the built-in playground." type:"path"`
	Width  int32  `help:"Window width." default:"1280"`
	Height int32  `help:"Window height." default:"720"`
	Debug  bool   `help:"Start with the debug panel open and verbose logging."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("playground"),
		kong.Description("First-person physics playground: walk, jump, push boxes."),
	)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := world.Default()
	if cli.Scene != "" {
		loaded, err := world.Load(cli.Scene)
		if err != nil {
			log.Fatal().Err(err).Msg("scene load failed")
		}
		cfg = loaded
	}

	game.New(cfg, cli.Width, cli.Height, cli.Debug).Run()
}

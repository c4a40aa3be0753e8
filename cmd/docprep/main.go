package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"docprep/internal/config"
	"docprep/internal/logger"
	"docprep/internal/pipeline"
)

func main() {
	app := &cli.App{
		Name:      "docprep",
		Usage:     "adaptive preprocessing of scanned document images for OCR",
		ArgsUsage: "<input image>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file with default settings"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "processed.png", Usage: "output image path"},
			&cli.StringFlag{Name: "deskew", Usage: "deskew mode: auto, on, off"},
			&cli.IntFlag{Name: "target-dpi", Usage: "resolution narrow images are upscaled toward"},
			&cli.BoolFlag{Name: "debug", Usage: "capture and save intermediate stage images"},
			&cli.StringFlag{Name: "debug-dir", Usage: "directory for intermediate stage images"},
			&cli.BoolFlag{Name: "trim-border", Usage: "crop a fixed margin from every edge"},
			&cli.StringFlag{Name: "log-level", Usage: "log level: debug, info, warn, error"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one input image", 2)
	}
	input := c.Args().First()

	fileCfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		fileCfg = loaded
	}

	if c.IsSet("deskew") {
		fileCfg.Deskew = c.String("deskew")
	}
	if c.IsSet("target-dpi") {
		fileCfg.TargetDPI = c.Int("target-dpi")
	}
	if c.IsSet("debug") {
		fileCfg.DebugCapture = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		fileCfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("trim-border") {
		fileCfg.TrimBorder = c.Bool("trim-border")
	}
	if c.IsSet("log-level") {
		fileCfg.LogLevel = c.String("log-level")
	}

	cfg, err := fileCfg.Pipeline()
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(fileCfg.LogLevel))

	loader := pipeline.NewLoader(log)
	src, err := loader.LoadFile(input)
	if err != nil {
		return err
	}
	defer src.Close()

	orch := pipeline.NewOrchestrator(cfg, log)
	res, err := orch.Process(c.Context, src)
	if err != nil {
		return err
	}
	defer res.Close()

	saver := pipeline.NewSaver(log)
	if err := saver.SaveFile(c.String("output"), res.Output); err != nil {
		return err
	}

	if cfg.DebugCapture {
		writer := pipeline.NewArtifactWriter(fileCfg.DebugDir, log)
		if err := writer.WriteAll(res); err != nil {
			return err
		}
	}

	return nil
}

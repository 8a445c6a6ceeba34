// Command spotlight shows an image with a spotlight over the regions listed
// in a YAML configuration file. The file is watched and reloaded on change.
//
// Defaults for -config and -image come from SPOTLIGHT_CONFIG and
// SPOTLIGHT_IMAGE, optionally set in a .env file in the working directory.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/phanxgames/spotlight"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	} else {
		log.Println("[INFO] Loaded environment variables from .env file")
	}

	configPath := flag.String("config", envOr("SPOTLIGHT_CONFIG", "spotlight.yaml"), "region configuration (YAML)")
	imagePath := flag.String("image", os.Getenv("SPOTLIGHT_IMAGE"), "image to display (PNG, JPEG, GIF, BMP or WebP)")
	title := flag.String("title", "spotlight", "window title")
	debug := flag.Bool("debug", false, "log state transitions and frame timings to stderr")
	hud := flag.Bool("hud", false, "draw FPS and beam state")
	scale := flag.Float64("scale", 1, "backing resolution relative to the displayed image")
	script := flag.String("script", "", "JSON test script to run (move, click, play, screenshot, ...)")
	shots := flag.String("screenshots", "screenshots", "directory for test script screenshots")
	noWatch := flag.Bool("no-watch", false, "do not reload the configuration when it changes")
	flag.Parse()

	if *imagePath == "" {
		log.Fatal("[ERROR] no image: pass -image or set SPOTLIGHT_IMAGE")
	}

	cfg, err := spotlight.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	img, err := spotlight.LoadImage(*imagePath)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	stage, err := spotlight.NewStage(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	stage.SetImage(img)
	stage.ScreenshotDir = *shots
	stage.OnSelect(func(evt spotlight.SelectionEvent) {
		log.Printf("[INFO] selected region %d (%s)", evt.Index, evt.Name)
	})

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("[ERROR] read script: %v", err)
		}
		runner, err := spotlight.LoadTestScript(data)
		if err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		stage.SetTestRunner(runner)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !*noWatch {
		err := spotlight.WatchConfig(ctx, stage, *configPath, func(err error) {
			log.Printf("[WARN] config reload: %v", err)
		})
		if err != nil {
			log.Printf("[WARN] config watch disabled: %v", err)
		} else {
			log.Printf("[INFO] watching %s", *configPath)
		}
	}

	b := img.Bounds()
	if err := spotlight.Run(stage, spotlight.RunConfig{
		Title:       *title,
		Width:       b.Dx(),
		Height:      b.Dy(),
		ShowHUD:     *hud,
		RenderScale: *scale,
		Debug:       *debug,
	}); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vedantwpatil/Mouse-Replay/internal/capture"
	"github.com/vedantwpatil/Mouse-Replay/internal/config"
	"github.com/vedantwpatil/Mouse-Replay/internal/event"
	"github.com/vedantwpatil/Mouse-Replay/internal/replay"
	"github.com/vedantwpatil/Mouse-Replay/internal/storage"
	"github.com/vedantwpatil/Mouse-Replay/internal/store"
)

const defaultConfigPath = "mouse-replay.toml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "record":
		return cmdRecord(rest)
	case "replay":
		return cmdReplay(rest)
	case "info":
		return cmdInfo(rest)
	case "list":
		return cmdList(rest)
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Record and replay mouse actions.

Usage:
  recorder record [-o file] [-config file]
  recorder replay file [-s speed] [-d delay] [-config file]
  recorder info file
  recorder list [-dir directory] [-watch] [-config file]

Commands:
  record   Capture mouse events until the cancel key (default esc) is released
  replay   Replay a recording against the live pointer
  info     Show a recording's metadata and event breakdown
  list     List the recordings in a directory`)
}

func cmdRecord(args []string) int {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file")
	output := fs.String("o", "", "output file (default <output_dir>/recording-<timestamp>.json)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	path := *output
	if path == "" {
		path = filepath.Join(cfg.Recording.OutputDir, store.DefaultName(time.Now()))
	}

	rec := capture.NewRecorder(cfg.Recording.CancelKey)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupt received, stopping recording...")
		rec.Stop()
	}()

	fmt.Printf("Recording mouse events... Press %s to stop.\n", cfg.Recording.CancelKey)
	recording, err := rec.Record()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recording failed: %v\n", err)
		return 1
	}

	if err := storage.Save(recording, path); err != nil {
		fmt.Fprintf(os.Stderr, "saving recording failed: %v\n", err)
		return 1
	}
	fmt.Printf("Recording stopped. %d events over %.2f seconds.\n",
		recording.Metadata.EventCount, recording.Metadata.Duration)
	fmt.Printf("Saved to: %s\n", path)
	return 0
}

func cmdReplay(args []string) int {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file")
	speed := fs.Float64("s", 0, "speed multiplier (default from config)")
	delay := fs.Float64("d", -1, "delay in seconds before the first event (default from config)")
	fs.Parse(args)

	// flag stops at the first positional argument, so re-parse what
	// follows the file to allow "replay rec.json -s 2" as well as
	// "replay -s 2 rec.json".
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: recorder replay file [-s speed] [-d delay]")
		return 2
	}
	file := fs.Arg(0)
	fs.Parse(fs.Args()[1:])
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "usage: recorder replay file [-s speed] [-d delay]")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *speed == 0 {
		*speed = cfg.Replay.Speed
	}
	if *delay < 0 {
		*delay = cfg.Replay.DelaySeconds
	}

	recording, err := storage.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading recording failed: %v\n", err)
		return 1
	}

	fmt.Printf("Loaded recording: %s\n", file)
	fmt.Printf("  Created:  %s\n", recording.Metadata.CreatedAt.Format(time.RFC3339))
	fmt.Printf("  Duration: %.2f seconds\n", recording.Metadata.Duration)
	fmt.Printf("  Events:   %d\n", recording.Metadata.EventCount)

	player := replay.NewPlayer(nil)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupt received, cancelling replay...")
		player.Cancel()
	}()

	fmt.Printf("Replaying at %gx in %g seconds... Press Ctrl+C to cancel.\n", *speed, *delay)

	progressDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-progressDone:
				return
			case <-ticker.C:
				fmt.Printf("\rProgress: %.1f%%", player.Progress()*100)
			}
		}
	}()

	res, err := player.Play(recording, *speed, time.Duration(*delay*float64(time.Second)))
	close(progressDone)
	fmt.Println()

	if err != nil {
		var injErr *replay.InjectionError
		if errors.As(err, &injErr) {
			fmt.Fprintf(os.Stderr, "replay aborted, %d events already emitted: %v\n",
				res.EventsEmitted, err)
		} else {
			fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		}
		return 1
	}
	if res.Cancelled {
		fmt.Printf("Replay cancelled after %d of %d events.\n",
			res.EventsEmitted, recording.Metadata.EventCount)
		return 0
	}
	fmt.Printf("Replay completed: %d events in %.2f seconds.\n",
		res.EventsEmitted, res.Elapsed.Seconds())
	return 0
}

func cmdInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: recorder info file")
		return 2
	}
	path := fs.Arg(0)

	recording, err := storage.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading recording failed: %v\n", err)
		return 1
	}

	fmt.Printf("Recording: %s\n", path)
	fmt.Printf("  Created:  %s\n", recording.Metadata.CreatedAt.Format(time.RFC3339))
	fmt.Printf("  Duration: %.2f seconds\n", recording.Metadata.Duration)
	fmt.Printf("  Events:   %d\n", recording.Metadata.EventCount)
	if s := recording.Metadata.Screen; s != nil {
		fmt.Printf("  Screen:   %dx%d\n", s.Width, s.Height)
	}

	counts := map[event.Type]int{}
	for _, ev := range recording.Events {
		counts[ev.Type]++
	}
	fmt.Println("  Breakdown:")
	for _, t := range []event.Type{event.TypeMove, event.TypeClick, event.TypeScroll} {
		fmt.Printf("    %-7s %d\n", t, counts[t])
	}
	return 0
}

func cmdList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file")
	dir := fs.String("dir", "", "recordings directory (default from config)")
	watch := fs.Bool("watch", false, "keep watching the directory for changes")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *dir == "" {
		*dir = cfg.Recording.OutputDir
	}

	s := store.New(*dir)
	infos, err := s.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printListing(*dir, infos)

	if !*watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	updates, err := s.Watch(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("Watching for changes... Press Ctrl+C to stop.")
	for infos := range updates {
		fmt.Println()
		printListing(*dir, infos)
	}
	return 0
}

func printListing(dir string, infos []store.Info) {
	fmt.Printf("Recordings in %s:\n", dir)
	if len(infos) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, info := range infos {
		if info.Err != nil {
			fmt.Printf("  %s (corrupted or invalid)\n", filepath.Base(info.Path))
			continue
		}
		fmt.Printf("  %s\n", filepath.Base(info.Path))
		fmt.Printf("    Created: %s | Duration: %.2fs | Events: %d\n",
			info.Metadata.CreatedAt.Format("2006-01-02 15:04:05"),
			info.Metadata.Duration, info.Metadata.EventCount)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"screengrab/config"
	"screengrab/grab"
	"screengrab/logutil"
	"screengrab/pacer"
	"screengrab/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	target := flag.String("target", "", `capture target: "desktop" or "title=<window name>"`)
	outDir := flag.String("o", "frames", "output directory for .bmp frames")
	frames := flag.Int("frames", 0, "number of frames to capture (0 = until interrupted)")
	rate := flag.String("rate", "", `frame rate: "30", "30000/1001", "29.97", "ntsc", "pal"`)
	size := flag.String("size", "", "capture size WxH in physical pixels (default: full area)")
	offsetX := flag.Int("offset-x", 0, "capture area x offset in physical pixels (with -size)")
	offsetY := flag.Int("offset-y", 0, "capture area y offset in physical pixels (with -size)")
	drawMouse := flag.Bool("draw-mouse", true, "draw the mouse pointer")
	showRegion := flag.Bool("show-region", false, "draw a border around the capture area")
	nonblock := flag.Bool("nonblock", false, "poll with TryRead instead of blocking reads")
	flag.Parse()

	// Environment (and .env) supply defaults; explicit flags win.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logutil.Setup(cfg.EnableFileLogging)

	opts := cfg.Options
	if *target == "" {
		*target = cfg.Target
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["draw-mouse"] {
		opts.DrawMouse = *drawMouse
	}
	if set["show-region"] {
		opts.ShowRegion = *showRegion
	}
	if *rate != "" {
		if opts.Framerate, err = pacer.Parse(*rate); err != nil {
			return err
		}
	}
	if *size != "" {
		if opts.Width, opts.Height, err = config.ParseSize(*size); err != nil {
			return err
		}
	}
	if set["offset-x"] {
		opts.OffsetX = *offsetX
	}
	if set["offset-y"] {
		opts.OffsetY = *offsetY
	}

	session, err := grab.Open(*target, opts)
	if err != nil {
		return err
	}
	defer session.Close()

	writer, err := sink.NewWriter(*outDir, 0)
	if err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Fprintf(os.Stderr, "Capturing %s at %s fps, %d-byte packets. Ctrl-C to stop.\n",
		*target, opts.Framerate, session.PacketSize())

	captured := 0
	dropped := 0
capture:
	for *frames == 0 || captured < *frames {
		select {
		case <-interrupt:
			break capture
		default:
		}

		var pkt grab.Packet
		if *nonblock {
			pkt, err = session.TryRead()
			if errors.Is(err, grab.ErrAgain) {
				time.Sleep(time.Millisecond)
				continue
			}
		} else {
			pkt, err = session.Read()
		}
		if err != nil {
			return err
		}
		captured++
		if !writer.Submit(pkt) {
			dropped++
		}
	}

	written := writer.Close()
	fmt.Fprintf(os.Stderr, "Captured %d frames, wrote %d, dropped %d (writer backlog).\n",
		captured, written, dropped)
	if err := session.Close(); err != nil {
		return err
	}
	log.Printf("cli: session closed")
	return nil
}

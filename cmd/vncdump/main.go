// Command vncdump connects to a VNC server, mirrors its framebuffer in
// memory, and optionally records the session to an MJPEG AVI file. It
// exists as a thin example harness over the rfb package, grounded on
// the upstream project's example/ directory and exercising pflag the
// way the rest of the retrieval pack's CLI tools do.
package main

import (
	"fmt"
	"image"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/soramimi/rfbclient"
	"github.com/soramimi/rfbclient/logger"
	"github.com/soramimi/rfbclient/recorder"
)

type printHandler struct {
	rfb.NoOpHandler
	verbose bool
}

func (h printHandler) OnConnectionState(connected bool) {
	fmt.Fprintf(os.Stderr, "connection: %v\n", connected)
}

func (h printHandler) OnFramebufferSize(width, height int) {
	fmt.Fprintf(os.Stderr, "framebuffer: %dx%d\n", width, height)
}

func (h printHandler) OnImageChanged(x, y, width, height int) {
	if h.verbose {
		fmt.Fprintf(os.Stderr, "update: +%d+%d %dx%d\n", x, y, width, height)
	}
}

func main() {
	addr := flag.StringP("addr", "a", "localhost:5900", "VNC server address")
	record := flag.StringP("record", "r", "", "path to write an MJPEG AVI recording, empty disables")
	timeout := flag.Duration("read-timeout", 5*time.Second, "server message read timeout")
	verbose := flag.BoolP("verbose", "v", false, "log every framebuffer update")
	flag.Parse()

	logger.SetDefault(logger.NewConsole(zerolog.InfoLevel))

	conn, err := net.DialTimeout("tcp", *addr, 10*time.Second)
	if err != nil {
		logger.Errorf("dial %s: %v", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	var engine *rfb.Engine
	var handler rfb.Handler = printHandler{verbose: *verbose}

	if *record != "" {
		snapshot := func() *image.RGBA {
			if engine == nil {
				return nil
			}
			return engine.Snapshot()
		}
		rec := recorder.New(handler, snapshot, recorder.Config{
			Path:   *record,
			Logger: logger.NewConsole(zerolog.InfoLevel),
		})
		handler = rec
	}

	engine = rfb.NewEngine(rfb.Config{
		Handler:     handler,
		Logger:      logger.NewConsole(zerolog.InfoLevel),
		ReadTimeout: *timeout,
	})

	if err := engine.Attach(conn); err != nil {
		logger.Errorf("attach: %v", err)
		os.Exit(1)
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		close(stop)
	}()

	if err := engine.Serve(stop); err != nil {
		logger.Errorf("serve: %v", err)
		os.Exit(1)
	}
}

// Command motion generates probe motion lists from configuration files
// and optionally plots them, stores them, drives them over a serial
// probe drive, or serves the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/banshee-data/probe.motion/internal/api"
	"github.com/banshee-data/probe.motion/internal/config"
	"github.com/banshee-data/probe.motion/internal/db"
	"github.com/banshee-data/probe.motion/internal/drive"
	"github.com/banshee-data/probe.motion/internal/motion"
	"github.com/banshee-data/probe.motion/internal/motion/monitor"
	"github.com/banshee-data/probe.motion/internal/units"
	"github.com/banshee-data/probe.motion/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to a motion list TOML file")
	outputUnits = flag.String("units", "cm", "Unit for printed coordinates (cm, mm, m, inch)")
	plotDir     = flag.String("plot", "", "Directory to write a mask plot PNG into")
	dbPath      = flag.String("db", "", "SQLite database for stored configs and run records")
	saveName    = flag.String("save", "", "Store the config under this name (requires -db)")
	listen      = flag.String("listen", "", "Serve the HTTP API on this address instead of generating")
	serialPort  = flag.String("serial", "", "Drive the sequence over this serial port")
	mockDrive   = flag.Bool("mock-drive", false, "Drive the sequence against an in-memory mover")
	settleDelay = flag.Duration("settle", 0, "Pause after each completed move")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	var database *db.DB
	if *dbPath != "" {
		var err error
		database, err = db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer database.Close()
	}

	if *listen != "" {
		server := api.NewServer(database)
		log.Fatal(server.ListenAndServe(*listen))
	}

	if *configPath == "" {
		log.Fatal("a -config file is required (or -listen to serve the API)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ml, err := motion.NewMotionListFromConfig(*cfg)
	if err != nil {
		log.Fatalf("invalid motion list config: %v", err)
	}

	name := strings.TrimSuffix(filepath.Base(*configPath), filepath.Ext(*configPath))

	if *saveName != "" {
		if database == nil {
			log.Fatal("-save requires -db")
		}
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("failed to reread config file: %v", err)
		}
		if err := database.SaveConfig(*saveName, string(raw)); err != nil {
			log.Fatalf("failed to store config: %v", err)
		}
		log.Printf("stored config %q", *saveName)
	}

	if err := printPoints(os.Stdout, ml, *outputUnits); err != nil {
		log.Fatalf("failed to print points: %v", err)
	}

	if *plotDir != "" {
		plotter, err := monitor.NewMaskPlotter(*plotDir)
		if err != nil {
			log.Fatalf("failed to create plotter: %v", err)
		}
		path, err := plotter.Plot(ml, name)
		if err != nil {
			log.Fatalf("failed to plot mask: %v", err)
		}
		log.Printf("wrote %s", path)
	}

	if *serialPort != "" || *mockDrive {
		if err := driveSequence(ml, database, name); err != nil {
			log.Fatalf("drive failed: %v", err)
		}
	}
}

// printPoints writes the final sequence, one point per line, converted
// from engine units (centimeters) to the requested unit.
func printPoints(w io.Writer, ml *motion.MotionList, unitName string) error {
	to, err := units.ParseUnit(unitName)
	if err != nil {
		return err
	}

	points := ml.Points()
	fmt.Fprintf(w, "# %d points (%s)\n", len(points), to)
	for _, point := range points {
		converted, err := units.ConvertPoint(point, units.Centimeter, to)
		if err != nil {
			return err
		}
		parts := make([]string, len(converted))
		for i, v := range converted {
			parts[i] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
	}
	return nil
}

func driveSequence(ml *motion.MotionList, database *db.DB, configName string) error {
	var mover drive.Mover
	if *mockDrive {
		mover = drive.NewMockMover(make([]float64, ml.Space().NDims()))
	} else {
		serialMover, err := drive.NewSerialMover(*serialPort, drive.DefaultSerialMode())
		if err != nil {
			return fmt.Errorf("failed to open serial mover: %w", err)
		}
		defer serialMover.Close()
		mover = serialMover
	}

	runner := drive.NewRunner(mover, ml)
	runner.SettleDelay = *settleDelay
	runner.OnStep = func(index int, point []float64) {
		log.Printf("step %d: reached %v", index, point)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	points := ml.Points()
	if database != nil {
		if err := database.RecordRunStart(runner.RunID, configName, time.Now().UnixNano(), len(points)); err != nil {
			return fmt.Errorf("failed to record run start: %w", err)
		}
	}

	visited, runErr := runner.Run(ctx)

	if database != nil {
		status := db.RunStatusCompleted
		if runErr != nil {
			status = db.RunStatusAborted
		}
		if err := database.RecordRunFinish(runner.RunID, time.Now().UnixNano(), visited, status); err != nil {
			return fmt.Errorf("failed to record run finish: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run %s aborted after %d of %d points: %w", runner.RunID, visited, len(points), runErr)
	}
	log.Printf("run %s completed: %d points visited", runner.RunID, visited)
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andareed/siftly-trend/config"
	"github.com/andareed/siftly-trend/logging"
	"github.com/andareed/siftly-trend/source"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var logFile = flag.String("debug", "", "Write Debug Logs to file")

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "siftly-trend.yaml", "settings file (missing is fine)")
	trendPath := flag.String("trend", "", "trend CSV export")
	alarmPath := flag.String("alarms", "", "alarm CSV export")
	tags := flag.String("tags", "", "comma separated tags to plot once the trend has loaded")
	window := flag.Duration("window", 0, "alarm correlation half window, e.g. 30m (overrides the config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: siftly-trend [--trend trend.csv] [--alarms alarms.csv] [--tags A,B] [file.csv ...]\n\n"+
				"Positional files are sniffed as trend or alarm exports.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cfg, err := config.ReadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if *window > 0 {
		cfg.CorrelationWindow = *window
	}

	cleanup, err := logging.SetupLogging(cfg.LogOptions(*logFile))
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("siftly-trend %s: Started, window=%s zone=%s", Version, cfg.CorrelationWindow, cfg.Location())

	m := newModel(cfg)
	m.ui.pendingTags = splitTags(*tags)
	if *trendPath != "" {
		m.queueLoad(*trendPath, source.KindTrend)
	}
	if *alarmPath != "" {
		m.queueLoad(*alarmPath, source.KindAlarms)
	}
	for _, p := range flag.Args() {
		m.queueLoad(p, source.KindUnknown)
	}

	zone.NewGlobal()
	defer zone.Close()

	start := time.Now()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	logging.Infof("siftly-trend: exited after %s", time.Since(start).Round(time.Second))
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Package main provides buysim, an interactive console harness for the
// weapon purchase system. It wires configuration, logging, the catalog,
// and a simulated host engine, then drives player lifecycle events and
// purchase triggers from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/config"
	"github.com/oylsister/buycmd/internal/observability"
	"github.com/oylsister/buycmd/internal/plugin"
	"github.com/oylsister/buycmd/internal/sim"
)

const defaultMoney = 800

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	catalogPath := flag.String("catalog", "", "override catalog path from config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	path := cfg.Catalog.Path
	if *catalogPath != "" {
		path = *catalogPath
	}

	h := sim.NewHost(os.Stdout, logger)
	plug := plugin.New(h, logger)
	plug.LoadFile(path)

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics listener started", zap.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	logger.Info("buysim ready",
		zap.Int("weapons", plug.Catalog().Len()),
		zap.Float64("cooldown_seconds", plug.Settings().Cooldown),
		zap.Duration("startup", time.Since(start)),
	)

	fmt.Println("buysim console. Type 'help' for commands.")
	repl(h, plug)
}

func repl(h *sim.Host, plug *plugin.Plugin) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "triggers":
			fmt.Println(strings.Join(h.Triggers(), " "))
		case "connect":
			if len(fields) < 2 {
				fmt.Println("usage: connect <name> [money]")
				continue
			}
			money := defaultMoney
			if len(fields) >= 3 {
				if n, err := strconv.Atoi(fields[2]); err == nil {
					money = n
				}
			}
			p := h.AddPlayer(fields[1], money)
			if p == nil {
				fmt.Printf("%s is already connected\n", fields[1])
				continue
			}
			plug.OnPlayerConnect(p)
			fmt.Printf("%s connected with $%d\n", fields[1], money)
		case "spawn":
			withPlayer(h, fields, func(name string, p *sim.Player) {
				h.SetAlive(name, true)
				plug.OnPlayerSpawn(p)
				fmt.Printf("%s spawned\n", name)
			})
		case "kill":
			withPlayer(h, fields, func(name string, p *sim.Player) {
				h.SetAlive(name, false)
				fmt.Printf("%s died\n", name)
			})
		case "disconnect":
			withPlayer(h, fields, func(name string, p *sim.Player) {
				plug.OnPlayerDisconnect(p)
				h.RemovePlayer(name)
				fmt.Printf("%s disconnected\n", name)
			})
		case "money":
			if len(fields) < 3 {
				fmt.Println("usage: money <name> <amount>")
				continue
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Println("usage: money <name> <amount>")
				continue
			}
			if !h.SetMoney(fields[1], n) {
				fmt.Printf("no such player: %s\n", fields[1])
			}
		case "status":
			if len(fields) < 2 {
				fmt.Println("usage: status <name>")
				continue
			}
			desc, ok := h.Describe(fields[1])
			if !ok {
				fmt.Printf("no such player: %s\n", fields[1])
				continue
			}
			fmt.Println(desc)
		case "say":
			if len(fields) < 3 {
				fmt.Println("usage: say <name> <trigger>")
				continue
			}
			p, ok := h.Player(fields[1])
			if !ok {
				fmt.Printf("no such player: %s\n", fields[1])
				continue
			}
			if !h.Dispatch(p, fields[2]) {
				fmt.Printf("unknown trigger: %s\n", fields[2])
			}
		default:
			fmt.Printf("unknown command: %s (try 'help')\n", fields[0])
		}
	}
}

func withPlayer(h *sim.Host, fields []string, fn func(name string, p *sim.Player)) {
	if len(fields) < 2 {
		fmt.Println("usage: " + fields[0] + " <name>")
		return
	}
	p, ok := h.Player(fields[1])
	if !ok {
		fmt.Printf("no such player: %s\n", fields[1])
		return
	}
	fn(fields[1], p)
}

func printHelp() {
	fmt.Println(`commands:
  connect <name> [money]   connect a player (default $800)
  spawn <name>             spawn the player (clears purchase history)
  kill <name>              mark the player dead
  disconnect <name>        disconnect the player
  money <name> <amount>    set the player's balance
  status <name>            show player state
  say <name> <trigger>     issue a purchase trigger as the player
  triggers                 list registered purchase triggers
  quit                     exit`)
}

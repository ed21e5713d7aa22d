package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/ubopod/wifimgr/wifi"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

// eventLog is the notification sink for domain events. On the device the
// equivalent sink feeds the UI notification pipeline; here events land in
// the log.
type eventLog struct {
	logger *slog.Logger
}

func (e eventLog) Dispatch(event any) {
	switch ev := event.(type) {
	case wifi.ConnectionForgotten:
		e.logger.Info("connection deleted", "ssid", ev.SSID)
	default:
		e.logger.Info("event", "type", fmt.Sprintf("%T", event))
	}
}

func main() {
	var (
		rootFlagSet = flag.NewFlagSet("wifimgr", flag.ExitOnError)
		configPath  = rootFlagSet.String("config", "", "path to config toml file (env: WIFIMGR_CONFIG)")
		useStub     = rootFlagSet.Bool("stub", false, "force the inert stub backend")
		verbose     = rootFlagSet.Bool("verbose", false, "enable debug logging")
		version     = rootFlagSet.Bool("version", false, "display version")
	)

	var m *wifi.Manager

	listFlagSet := flag.NewFlagSet("list", flag.ExitOnError)
	listJSON := listFlagSet.Bool("json", false, "output in JSON format")
	listCmd := &ffcli.Command{
		Name:      "list",
		ShortHelp: "List saved wifi networks and their state",
		FlagSet:   listFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			return runList(os.Stdout, *listJSON, m)
		},
	}

	statusCmd := &ffcli.Command{
		Name:      "status",
		ShortHelp: "Show device and radio state",
		Exec: func(ctx context.Context, args []string) error {
			return runStatus(os.Stdout, m)
		},
	}

	scanCmd := &ffcli.Command{
		Name:      "scan",
		ShortHelp: "Request a wifi scan",
		Exec: func(ctx context.Context, args []string) error {
			return runScan(os.Stdout, m)
		},
	}

	connectCmd := &ffcli.Command{
		Name:      "connect",
		ShortHelp: "Activate a saved wifi network",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("connect requires an ssid")
			}
			return runConnect(os.Stdout, args[0], m)
		},
	}

	joinFlagSet := flag.NewFlagSet("join", flag.ExitOnError)
	joinPassphrase := joinFlagSet.String("passphrase", "", "passphrase for the network")
	joinSecurity := joinFlagSet.String("security", "wpa2", "security type (open, wep, wpa, wpa2)")
	joinHidden := joinFlagSet.Bool("hidden", false, "network is hidden")
	joinCmd := &ffcli.Command{
		Name:      "join",
		ShortHelp: "Provision and activate a new wifi network",
		FlagSet:   joinFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("join requires an ssid")
			}
			security, err := parseSecurity(*joinSecurity)
			if err != nil {
				return err
			}
			return runJoin(os.Stdout, args[0], *joinPassphrase, security, *joinHidden, m)
		},
	}

	disconnectCmd := &ffcli.Command{
		Name:      "disconnect",
		ShortHelp: "Deactivate the current wifi connection",
		Exec: func(ctx context.Context, args []string) error {
			return runDisconnect(os.Stdout, m)
		},
	}

	forgetCmd := &ffcli.Command{
		Name:      "forget",
		ShortHelp: "Delete the saved profile(s) for an ssid",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("forget requires an ssid")
			}
			return runForget(os.Stdout, args[0], m)
		},
	}

	radioCmd := &ffcli.Command{
		Name:      "radio",
		ShortHelp: "Show or set the wireless radio state (on/off)",
		Exec: func(ctx context.Context, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runRadio(os.Stdout, arg, m)
		},
	}

	root := &ffcli.Command{
		ShortUsage: "wifimgr [flags] <subcommand> [args...]",
		FlagSet:    rootFlagSet,
		Subcommands: []*ffcli.Command{
			listCmd, statusCmd, scanCmd, connectCmd, joinCmd,
			disconnectCmd, forgetCmd, radioCmd,
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	err := ff.Parse(rootFlagSet, os.Args[1:],
		ff.WithEnvVarPrefix("WIFIMGR"),
		ff.WithIgnoreUndefined(true), // Ignore subcommand flags for now
	)
	if err != nil {
		if err == flag.ErrHelp {
			root.FlagSet.Usage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *useStub {
		cfg.Backend = BackendStub
	}

	backend, err := GetBackend(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	m = wifi.NewManager(backend, eventLog{logger: logger}, logger)
	defer m.Close()

	if err := root.Run(context.Background()); err != nil {
		if err == flag.ErrHelp {
			root.FlagSet.Usage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

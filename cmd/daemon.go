package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/amqp"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/config"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/daemon"
)

var (
	flagDaemonAddr     string
	flagDaemonInterval time.Duration
	flagDaemonDetach   bool
	flagDaemonChild    bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve live metrics over HTTP/SSE and optionally AMQP",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.PersistentFlags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.PersistentFlags().DurationVar(&flagDaemonInterval, "interval", 0, "Recompute interval (default from config)")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// daemonSettings merges flags over config.
func daemonSettings(cfg config.Config) (string, time.Duration) {
	addr := cfg.Daemon.Addr
	if flagDaemonAddr != "" {
		addr = flagDaemonAddr
	}
	interval := cfg.DaemonInterval()
	if flagDaemonInterval > 0 {
		interval = flagDaemonInterval
	}
	return addr, interval
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	if flagDaemonDetach && flagDaemonChild {
		return errors.New("invalid daemon launch mode")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proc := daemon.ProcessFiles(config.DataDir(cfg))

	if flagDaemonDetach {
		return detachDaemon(cfg, proc)
	}
	return serveDaemon(cmd.Context(), cfg, proc)
}

// detachDaemon re-executes the current command line as a child process
// writing to the daemon log.
func detachDaemon(cfg config.Config, proc daemon.Process) error {
	if err := proc.EnsureFree(); err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(config.DataDir(cfg), 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	//nolint:gosec // log path is derived from the user's data dir
	logf, err := os.OpenFile(proc.LogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	args := make([]string, 0, len(os.Args))
	for _, a := range os.Args[1:] {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		args = append(args, a)
	}
	args = append(args, "--child")

	child := exec.Command(exe, args...) //nolint:gosec // re-executes this binary
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	addr, _ := daemonSettings(cfg)
	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  API: http://%s/v1/status\n", addr)
	fmt.Printf("  Log: %s\n", proc.LogPath)
	return nil
}

func serveDaemon(ctx context.Context, cfg config.Config, proc daemon.Process) error {
	addr, interval := daemonSettings(cfg)
	if err := proc.Claim(daemon.RuntimeState{
		PID:       os.Getpid(),
		Addr:      addr,
		StartedAt: time.Now(),
		DataDir:   config.DataDir(cfg),
	}); err != nil {
		return err
	}
	defer proc.Release()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	var pub daemon.Publisher
	if cfg.AMQP.URL != "" {
		p, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey, e.log)
		if err != nil {
			return fmt.Errorf("connecting to broker: %w", err)
		}
		defer func() { _ = p.Close() }()
		pub = p
	}

	svc := daemon.New(daemon.Config{
		DataDir:      config.DataDir(cfg),
		Interval:     interval,
		Addr:         addr,
		EventsBuffer: cfg.Daemon.EventsBuffer,
	}, e.repo, pub, e.log)

	e.log.WithFields(logrus.Fields{
		"addr":     addr,
		"interval": interval.String(),
		"amqp":     pub != nil,
	}).Info("finflex daemon starting")
	fmt.Printf("  finflex daemon listening on http://%s\n", addr)
	fmt.Printf("  Recomputing every %s from %s\n", interval, config.LedgerPath(cfg))
	fmt.Println("  Stop with: finflex daemon stop")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proc := daemon.ProcessFiles(config.DataDir(cfg))

	pid, err := proc.PID()
	if err != nil {
		fmt.Println("  Daemon: not running")
		return nil
	}
	if !daemon.Alive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr, _ := daemonSettings(cfg)
	if st, err := proc.State(); err == nil && st.Addr != "" {
		addr = st.Addr
	}
	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	st, err := daemon.FetchStatus(cmd.Context(), addr)
	if err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}

	var rows [][2]string
	if st.LastPollAt.IsZero() {
		rows = append(rows, [2]string{"Last poll", "pending"})
	} else {
		rows = append(rows, [2]string{"Last poll", st.LastPollAt.Local().Format(time.RFC3339)})
	}
	rows = append(rows, [2]string{"Polls", cli.FormatNumber(st.PollCount)})
	if !st.HasProfile {
		rows = append(rows, [2]string{"Profile", "not set up"})
	}
	rows = append(rows,
		[2]string{"Transactions", cli.FormatNumber(int64(st.Summary.Transactions))},
		[2]string{"Safe today", cli.FormatMoney(st.Summary.DailySafeSpend)},
		[2]string{"Spent this month", cli.FormatMoney(st.Summary.TotalSpentThisMonth)},
		[2]string{"Discipline", cli.FormatPercent(st.Summary.DisciplineScore)},
	)
	if st.LastError != "" {
		rows = append(rows, [2]string{"Last error", st.LastError})
	}
	fmt.Print(cli.RenderKV(rows))
	return nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pid, err := daemon.ProcessFiles(config.DataDir(cfg)).Stop(8 * time.Second)
	if err != nil {
		return err
	}
	fmt.Printf("  Stopped daemon (pid %d)\n", pid)
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/config"
	"ProductShowcase/internal/notify"
	"ProductShowcase/internal/session"
	"ProductShowcase/internal/tui"
	"ProductShowcase/pkg/kit"
)

func newTUICommand(rootOpts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the showcase in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTUI(ctx, cfg, logFile)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs to this file (the terminal is taken by the UI)")
	return cmd
}

func runTUI(ctx context.Context, cfg config.Config, logFile string) error {
	log := zap.NewNop()
	if logFile != "" {
		l, err := kit.NewFileLogger(serviceName+"-tui", cfg.LogLevel, logFile)
		if err != nil {
			return err
		}
		log = l
		defer func() { _ = log.Sync() }()
	}

	be, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	events := make(chan notify.Completion, 1)
	sinks := append([]notify.Sink{notify.NewChanSink(events), notify.LogSink{Log: log}}, be.sinks...)
	disp := notify.NewDispatcher(log, notify.DispatcherOptions{}, sinks...)
	defer disp.Close()

	sess := session.New("tui_"+uuid.NewString(), catalog.Default(), session.Options{
		AnimationDelay: cfg.AnimationDelay,
		Publisher:      disp,
	})
	defer sess.Close()
	log.Info("tui session started", zap.String("session_id", sess.ID()))

	m := tui.New(sess, events, cfg.Page.Title, cfg.AnimationDelay)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

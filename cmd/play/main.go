package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/config"
	"github.com/aliskhannn/trivia-quiz-bot/internal/delivery/tui"
	"github.com/aliskhannn/trivia-quiz-bot/internal/logger"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
)

func main() {
	var (
		path      string
		countdown int
		noColor   bool
	)
	flag.StringVar(&path, "file", "", "Path to a YAML trivia set")
	flag.IntVar(&countdown, "countdown", 0, "Seconds per question (default from config)")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.Parse()

	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: play -file <set.yaml> [-countdown N] [-no-color]")
		os.Exit(2)
	}

	if err := run(path, countdown, noColor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, countdown int, noColor bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if countdown <= 0 {
		countdown = cfg.Quiz.CountdownSeconds
	}

	// Logs would corrupt the terminal UI, so only errors from setup are reported.
	lg, err := logger.New(cfg)
	if err != nil {
		return err
	}
	lg = lg.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	defer func() { _ = lg.Sync() }()

	file, err := service.LoadSetFile(path)
	if err != nil {
		return err
	}
	set, questions, key, err := file.Playable()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	renderer := tui.NewRenderer(256)
	runner, err := quiz.New(questions, key, renderer,
		quiz.WithCountdown(countdown),
		quiz.WithLogger(lg),
	)
	if err != nil {
		return err
	}
	defer runner.Stop()

	model := tui.NewModel(runner, renderer.Events(), tui.Options{
		Title:   set.Title,
		NoColor: noColor,
	})
	program := tea.NewProgram(model)

	// Start blocks on the event buffer only if it fills, which the program drains.
	go func() {
		if err := runner.Start(); err != nil {
			lg.Error("failed to start quiz", zap.Error(err))
			program.Quit()
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

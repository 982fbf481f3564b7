package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ImportScheduler periodically loads the YAML trivia sets of a directory
// into the database.
type ImportScheduler struct {
	dir      string
	schedule string
	trivia   *TriviaService
	logger   *zap.Logger
}

// NewImportScheduler creates a new ImportScheduler. schedule uses cron
// syntax, including descriptors such as "@every 10m".
func NewImportScheduler(dir, schedule string, trivia *TriviaService, logger *zap.Logger) *ImportScheduler {
	return &ImportScheduler{
		dir:      dir,
		schedule: schedule,
		trivia:   trivia,
		logger:   logger,
	}
}

// Start imports once, then on every tick of the schedule until ctx is done.
func (s *ImportScheduler) Start(ctx context.Context) {
	s.logger.Info("set importer started", zap.String("dir", s.dir))

	s.run(ctx)

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Debug("cron triggered: importing trivia sets")
		s.run(ctx)
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.String("schedule", s.schedule), zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("set importer stopped")
}

func (s *ImportScheduler) run(ctx context.Context) {
	n, err := s.ImportAll(ctx)
	if err != nil {
		s.logger.Error("failed to import trivia sets", zap.Error(err))
		return
	}
	s.logger.Info("trivia sets imported", zap.Int("count", n))
}

// ImportAll imports every set file of the directory and returns how many
// were stored. A bad file is logged and skipped.
func (s *ImportScheduler) ImportAll(ctx context.Context) (int, error) {
	paths, err := SetFiles(s.dir)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			return imported, ctx.Err()
		}

		if err := s.importFile(ctx, path); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) || errors.Is(err, ErrDuplicateQuestionID) {
				s.logger.Warn("skipping invalid set file", zap.String("path", path), zap.Error(err))
				continue
			}
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (s *ImportScheduler) importFile(ctx context.Context, path string) error {
	file, err := LoadSetFile(path)
	if err != nil {
		// Unreadable files are skipped like invalid ones.
		return &ValidationError{Fields: map[string]string{"file": err.Error()}}
	}

	set, err := s.trivia.Import(ctx, file.ID, file.SetInput)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Debug("trivia set imported",
		zap.String("path", path),
		zap.String("set_id", set.ID.String()),
	)
	return nil
}

package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/trivia-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// setNamespace derives stable set IDs from file names that carry no id.
var setNamespace = uuid.MustParse("6f1c2a7e-4d0b-4b8e-9a51-3c2f0e7d9b44")

// SetFile is a trivia set stored as YAML.
type SetFile struct {
	ID       uuid.UUID
	Path     string
	SetInput SetInput
}

type setFileDoc struct {
	ID       string `yaml:"id"`
	SetInput `yaml:",inline"`
}

// ParseSetFile decodes a YAML trivia set. name is used to derive an ID when
// the document has none.
func ParseSetFile(name string, data []byte) (*SetFile, error) {
	var doc setFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	id := uuid.NewSHA1(setNamespace, []byte(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))))
	if doc.ID != "" {
		parsed, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid id %q: %w", name, doc.ID, err)
		}
		id = parsed
	}

	return &SetFile{ID: id, Path: name, SetInput: doc.SetInput}, nil
}

// LoadSetFile reads and decodes a YAML trivia set file.
func LoadSetFile(path string) (*SetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set file: %w", err)
	}
	return ParseSetFile(path, data)
}

// SetFiles returns the YAML files of dir in name order.
func SetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sets dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return paths, nil
}

// Playable validates the file and builds a runnable quiz from it without
// touching storage.
func (f *SetFile) Playable() (*entities.TriviaSet, []quiz.Question, quiz.AnswerKey, error) {
	if err := f.SetInput.Validate(); err != nil {
		return nil, nil, nil, err
	}

	set := f.SetInput.toEntity(0)
	set.ID = f.ID

	questions, key, err := BuildPlayable(set)
	if err != nil {
		return nil, nil, nil, err
	}
	return set, questions, key, nil
}

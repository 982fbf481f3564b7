package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const geographyYAML = `
title: Geography
category: general
difficulty: easy
questions:
  - id: capital
    text: Capital of France?
    options:
      - text: Paris
        is_correct: true
      - text: Rome
  - text: Largest ocean?
    options:
      - text: Atlantic
      - text: Pacific
        is_correct: true
`

func TestParseSetFile(t *testing.T) {
	file, err := ParseSetFile("sets/geography.yaml", []byte(geographyYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if file.SetInput.Title != "Geography" || len(file.SetInput.Questions) != 2 {
		t.Fatalf("unexpected input: %+v", file.SetInput)
	}
	if !file.SetInput.Questions[0].Options[0].IsCorrect {
		t.Fatalf("is_correct not decoded")
	}
	if err := file.SetInput.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	again, err := ParseSetFile("other/geography.yml", []byte(geographyYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if again.ID != file.ID {
		t.Fatalf("expected stable id derived from file name")
	}
}

func TestParseSetFile_ExplicitID(t *testing.T) {
	id := uuid.New()
	data := "id: " + id.String() + "\n" + geographyYAML

	file, err := ParseSetFile("x.yaml", []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if file.ID != id {
		t.Fatalf("expected id %s, got %s", id, file.ID)
	}

	if _, err := ParseSetFile("x.yaml", []byte("id: nope\n"+geographyYAML)); err == nil {
		t.Fatalf("expected invalid id error")
	}
}

func TestImportScheduler_ImportAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("geography.yaml", geographyYAML)
	write("broken.yaml", "title: [")
	write("empty.yml", "title: Empty\ncategory: x\ndifficulty: easy\n")
	write("notes.txt", "ignored")

	repo := newFakeSetRepo()
	svc := NewTriviaService(repo, nil, zap.NewNop())
	importer := NewImportScheduler(dir, "@every 1h", svc, zap.NewNop())

	n, err := importer.ImportAll(context.Background())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 || len(repo.sets) != 1 {
		t.Fatalf("expected one imported set, got %d (%d stored)", n, len(repo.sets))
	}

	// Re-importing replaces instead of duplicating.
	if _, err := importer.ImportAll(context.Background()); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(repo.sets) != 1 {
		t.Fatalf("expected re-import to replace, got %d sets", len(repo.sets))
	}
}

func TestSetFile_Playable(t *testing.T) {
	file, err := ParseSetFile("geography.yaml", []byte(geographyYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	set, questions, key, err := file.Playable()
	if err != nil {
		t.Fatalf("playable: %v", err)
	}
	if set.ID != file.ID {
		t.Fatalf("expected set id %s, got %s", file.ID, set.ID)
	}
	if len(questions) != 2 || questions[0].ID != "capital" || questions[1].ID != "q2" {
		t.Fatalf("unexpected questions %+v", questions)
	}
	if !key.Correct("q2", "Pacific") {
		t.Fatalf("expected Pacific to be accepted, key %+v", key)
	}
}

func TestSetFile_PlayableInvalid(t *testing.T) {
	file, err := ParseSetFile("empty.yaml", []byte("title: Empty\ncategory: x\ndifficulty: easy\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, _, _, err := file.Playable(); err == nil {
		t.Fatalf("expected validation error")
	}
}

package catalog

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/foundation/quiz/parser"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "quizzes.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleQuiz(t *testing.T) *ast.Quiz {
	t.Helper()
	q, err := parser.Parse(`quiz {
  title: "Capitals";
  question {
    text: "Capital of France?";
    choice: "Paris"; choice: "Lyon";
    answer: 0;
    difficulty: "easy";
    tag: "europe"; tag: "geo";
  }
  question { text: "Largest ocean?"; answer: 2; tag: "geo"; }
}`, parser.Options{DecodeStrings: true})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestDefaultSQLiteConfig(t *testing.T) {
	if got := DefaultSQLiteConfig().Path; got != "./data/quizzes.db" {
		t.Errorf("Path = %v, want ./data/quizzes.db", got)
	}
}

func TestSaveAndGet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	original := sampleQuiz(t)

	id, err := store.Save(ctx, original, "capitals.quiz")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned an empty ID")
	}

	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Title != "Capitals" || rec.SourcePath != "capitals.quiz" || rec.QuestionCount != 2 {
		t.Errorf("summary = %+v", rec.Summary)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	want := original.Clone()
	want.Normalize()
	if !reflect.DeepEqual(rec.Quiz, want) {
		t.Errorf("Get() quiz = %#v\nwant %#v", rec.Quiz, want)
	}
}

func TestSavePreservesUnsetFields(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	q := ast.New()
	q.Description = ast.StringPtr("")
	q.Questions = append(q.Questions, ast.NewQuestion("only", -1))

	id, err := store.Save(ctx, q, "")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Quiz.Title != nil {
		t.Errorf("Title = %q, want nil", *rec.Quiz.Title)
	}
	if rec.Quiz.Description == nil || *rec.Quiz.Description != "" {
		t.Error("an empty description must survive as an empty string, not nil")
	}
	if rec.Quiz.Questions[0].Difficulty != nil || rec.Quiz.Questions[0].Answer != -1 {
		t.Errorf("question = %+v", rec.Quiz.Questions[0])
	}
}

func TestSaveNil(t *testing.T) {
	store := createTestStore(t)
	if _, err := store.Save(context.Background(), nil, ""); !qzerror.HasCode(err, qzerror.CodeInvalidInput) {
		t.Errorf("Save(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestGetNotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !qzerror.HasCode(err, qzerror.CodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestListFindCountDelete(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, sampleQuiz(t), "a.quiz")
	if err != nil {
		t.Fatal(err)
	}
	other := ast.New()
	q := ast.NewQuestion("2+2?", 0)
	q.Tags = []string{"math"}
	other.Questions = append(other.Questions, q)
	second, err := store.Save(ctx, other, "b.quiz")
	if err != nil {
		t.Fatal(err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != first || list[1].ID != second {
		t.Errorf("List() = %+v", list)
	}

	tests := []struct {
		tag  string
		want []string
	}{
		{"geo", []string{first}},
		{"math", []string{second}},
		{"europe", []string{first}},
		{"history", nil},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			found, err := store.FindByTag(ctx, tt.tag)
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, s := range found {
				ids = append(ids, s.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("FindByTag(%q) = %v, want %v", tt.tag, ids, tt.want)
			}
		})
	}

	if n, _ := store.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}

	if err := store.Delete(ctx, first); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, first); !qzerror.HasCode(err, qzerror.CodeNotFound) {
		t.Errorf("second Delete() error = %v, want NOT_FOUND", err)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count() after delete = %d, want 1", n)
	}
	if found, _ := store.FindByTag(ctx, "geo"); len(found) != 0 {
		t.Error("questions of a deleted quiz should be gone")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.db")
	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.Save(context.Background(), sampleQuiz(t), "")
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if _, err := reopened.Get(context.Background(), id); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
	if reopened.Path() != path {
		t.Errorf("Path() = %q, want %q", reopened.Path(), path)
	}
}

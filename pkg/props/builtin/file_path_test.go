package builtin

import (
	"context"
	"strings"
	"testing"

	"github.com/fluxdoc/fluxdoc/pkg/doccontext"
	"github.com/fluxdoc/fluxdoc/pkg/props"
)

func TestInjectSourcePath_Success(t *testing.T) {
	bag := props.Bag{"title": "Test Document"}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path:  "/path/to/document.md",
		Title: "Test Document",
	})

	transform := InjectSourcePath("")
	if err := transform(ctx, bag); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if path, ok := bag["source_path"].(string); !ok || path != "/path/to/document.md" {
		t.Errorf("expected source_path '/path/to/document.md', got %v", bag["source_path"])
	}
}

func TestInjectSourcePath_CustomKey(t *testing.T) {
	bag := props.Bag{"title": "Test Document"}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path:  "/custom/path.md",
		Title: "Test Document",
	})

	transform := InjectSourcePath("origin_file")
	if err := transform(ctx, bag); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if path, ok := bag["origin_file"].(string); !ok || path != "/custom/path.md" {
		t.Errorf("expected origin_file '/custom/path.md', got %v", bag["origin_file"])
	}
	if _, exists := bag["source_path"]; exists {
		t.Error("default source_path key should not be set when using custom key")
	}
}

func TestInjectSourcePath_AlreadyExists(t *testing.T) {
	bag := props.Bag{"source_path": "/existing/path.md"}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path:  "/new/path.md",
		Title: "Test",
	})

	transform := InjectSourcePath("")
	if err := transform(ctx, bag); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if path := bag["source_path"].(string); path != "/existing/path.md" {
		t.Errorf("expected existing path to be preserved, got %v", path)
	}
}

func TestInjectSourcePath_NilBag(t *testing.T) {
	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path: "/path/to/document.md", Title: "Test",
	})

	transform := InjectSourcePath("")
	err := transform(ctx, nil)
	if err == nil {
		t.Fatal("expected error for nil bag, got nil")
	}
	if !strings.Contains(err.Error(), "bag cannot be nil") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInjectSourcePath_NoFileInfo(t *testing.T) {
	bag := props.Bag{"title": "Test Document"}
	ctx := context.Background()

	transform := InjectSourcePath("")
	err := transform(ctx, bag)
	if err == nil {
		t.Fatal("expected error for missing FileInfo, got nil")
	}
	if !strings.Contains(err.Error(), "source path not found in context") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInjectSourcePath_EmptyPath(t *testing.T) {
	bag := props.Bag{"title": "Test Document"}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path: "", Title: "Test",
	})

	transform := InjectSourcePath("")
	err := transform(ctx, bag)
	if err == nil {
		t.Fatal("expected error for empty path, got nil")
	}
	if !strings.Contains(err.Error(), "source path not found in context") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInjectSourcePath_Idempotent(t *testing.T) {
	bag := props.Bag{"title": "Test Document"}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path: "/path/to/document.md", Title: "Test",
	})

	transform := InjectSourcePath("")

	if err := transform(ctx, bag); err != nil {
		t.Fatalf("first application failed: %v", err)
	}
	first := bag["source_path"].(string)

	if err := transform(ctx, bag); err != nil {
		t.Fatalf("second application failed: %v", err)
	}
	second := bag["source_path"].(string)

	if first != second {
		t.Errorf("transform not idempotent: first=%q, second=%q", first, second)
	}
}

func TestInjectSourcePath_PreservesOtherKeys(t *testing.T) {
	bag := props.Bag{
		"title":  "Test Document",
		"author": "John Doe",
		"tags":   []string{"test", "example"},
	}

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path: "/path/to/document.md", Title: "Test",
	})

	transform := InjectSourcePath("")
	if err := transform(ctx, bag); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if bag["title"] != "Test Document" {
		t.Errorf("title was modified")
	}
	if bag["author"] != "John Doe" {
		t.Errorf("author was modified")
	}
	if len(bag) != 4 {
		t.Errorf("unexpected number of keys: %d", len(bag))
	}
}

func TestInjectSourcePath_EmptyBag(t *testing.T) {
	bag := props.EmptyBag()

	ctx := doccontext.WithFileInfo(context.Background(), doccontext.FileInfo{
		Path: "/path/to/document.md", Title: "Test",
	})

	transform := InjectSourcePath("")
	if err := transform(ctx, bag); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(bag) != 1 {
		t.Errorf("expected 1 key in bag, got %d", len(bag))
	}
	if path := bag["source_path"].(string); path != "/path/to/document.md" {
		t.Errorf("expected path '/path/to/document.md', got %q", path)
	}
}

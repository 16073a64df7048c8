package doccontext

import (
	"context"
	"testing"
)

func TestWithFileInfo(t *testing.T) {
	ctx := context.Background()
	info := FileInfo{
		Path:  "test.md",
		Title: "Test Document",
	}

	ctx = WithFileInfo(ctx, info)

	retrieved, ok := FileInfoFrom(ctx)
	if !ok {
		t.Fatal("expected FileInfo in context")
	}

	if retrieved.Path != info.Path {
		t.Errorf("Path = %q, want %q", retrieved.Path, info.Path)
	}
	if retrieved.Title != info.Title {
		t.Errorf("Title = %q, want %q", retrieved.Title, info.Title)
	}
}

func TestFileInfoFrom_Missing(t *testing.T) {
	ctx := context.Background()

	_, ok := FileInfoFrom(ctx)
	if ok {
		t.Error("expected no FileInfo in empty context")
	}
}

func TestFileInfoFrom_WrongType(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, fiKey, "wrong type")

	_, ok := FileInfoFrom(ctx)
	if ok {
		t.Error("expected FileInfoFrom to return false for wrong type")
	}
}

func TestMustFileInfo_Present(t *testing.T) {
	ctx := context.Background()
	info := FileInfo{Path: "test.md", Title: "Test"}

	ctx = WithFileInfo(ctx, info)
	retrieved := MustFileInfo(ctx)

	if retrieved.Path != info.Path {
		t.Errorf("Path = %q, want %q", retrieved.Path, info.Path)
	}
	if retrieved.Title != info.Title {
		t.Errorf("Title = %q, want %q", retrieved.Title, info.Title)
	}
}

func TestMustFileInfo_Missing(t *testing.T) {
	ctx := context.Background()
	retrieved := MustFileInfo(ctx)

	if retrieved.Path != "" {
		t.Errorf("expected empty Path, got %q", retrieved.Path)
	}
	if retrieved.Title != "" {
		t.Errorf("expected empty Title, got %q", retrieved.Title)
	}
}

func TestWithFileInfo_Overwrite(t *testing.T) {
	ctx := context.Background()

	ctx = WithFileInfo(ctx, FileInfo{Path: "first.md", Title: "First"})
	ctx = WithFileInfo(ctx, FileInfo{Path: "second.md", Title: "Second"})

	retrieved, ok := FileInfoFrom(ctx)
	if !ok {
		t.Fatal("expected FileInfo in context")
	}

	if retrieved.Path != "second.md" {
		t.Errorf("Path = %q, want \"second.md\"", retrieved.Path)
	}
	if retrieved.Title != "Second" {
		t.Errorf("Title = %q, want \"Second\"", retrieved.Title)
	}
}

func TestFileInfo_SpecialCharacters(t *testing.T) {
	ctx := context.Background()
	info := FileInfo{
		Path:  "path/with spaces/and-特殊字符.md",
		Title: "Title with émojis 🎉 and symbols!@#$",
	}

	ctx = WithFileInfo(ctx, info)
	retrieved, ok := FileInfoFrom(ctx)

	if !ok {
		t.Fatal("expected FileInfo in context")
	}

	if retrieved.Path != info.Path {
		t.Errorf("Path not preserved with special characters")
	}
	if retrieved.Title != info.Title {
		t.Errorf("Title not preserved with special characters")
	}
}

package builtin

import (
	"context"
	"testing"

	"github.com/fluxdoc/fluxdoc/pkg/props"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

func TestHeadingNormalize_PromotesFirstHeading(t *testing.T) {
	root := section.NewRoot("Doc")
	h1 := root.CreateChild("Deep", 4, "")

	if err := section.ApplyTransform(context.Background(), props.EmptyBag(), root, HeadingNormalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1.Level() != 2 {
		t.Errorf("expected first heading promoted to level 2, got %d", h1.Level())
	}
}

func TestHeadingNormalize_CapsJumps(t *testing.T) {
	root := section.NewRoot("Doc")
	h1 := root.CreateChild("A", 1, "")
	h2 := h1.CreateChild("A.1", 5, "")

	if err := section.ApplyTransform(context.Background(), props.EmptyBag(), root, HeadingNormalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h2.Level() != h1.Level()+1 {
		t.Errorf("expected jump capped to %d, got %d", h1.Level()+1, h2.Level())
	}
}

func TestHeadingNormalize_EmptyTitleIsRemoved(t *testing.T) {
	root := section.NewRoot("Doc")
	root.CreateChild("   ", 1, "orphaned body text")

	if err := section.ApplyTransform(context.Background(), props.EmptyBag(), root, HeadingNormalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children()) != 0 {
		t.Errorf("expected empty heading removed, still have %d children", len(root.Children()))
	}
	if root.Content() != "orphaned body text" {
		t.Errorf("expected removed heading's content folded into parent, got %q", root.Content())
	}
}

func TestHeadingNormalize_EmptyTitlePromotesItsChildren(t *testing.T) {
	root := section.NewRoot("Doc")
	empty := root.CreateChild("   ", 1, "")
	grandchild := empty.CreateChild("Kept", 2, "body")

	if err := section.ApplyTransform(context.Background(), props.EmptyBag(), root, HeadingNormalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	children := root.Children()
	if len(children) != 1 || children[0] != grandchild {
		t.Fatalf("expected the empty heading's child reparented onto root, got %v", children)
	}
	if grandchild.Parent() != root {
		t.Errorf("expected reparented child's Parent() to be root")
	}
}

func TestHeadingNormalize_DemotesAnnotationLines(t *testing.T) {
	root := section.NewRoot("Doc")
	h1 := root.CreateChild("A", 1, "(draft note)\nReal content here.")

	if err := section.ApplyTransform(context.Background(), props.EmptyBag(), root, HeadingNormalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1.Content() == "(draft note)\nReal content here." {
		t.Error("expected annotation line to be demoted")
	}
}

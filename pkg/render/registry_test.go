package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRenderer struct {
	name string
}

func (f fakeRenderer) Name() string        { return f.name }
func (f fakeRenderer) ContentType() string { return "text/plain" }

func (f fakeRenderer) Render(context.Context, View) ([]byte, error) {
	return []byte(f.name), nil
}

func (f fakeRenderer) RenderNotice(context.Context, Notice) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakeRenderer{name: "html"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := r.Get("html")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != "html" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(fakeRenderer{name: "html"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(fakeRenderer{name: "html"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := r.Register(fakeRenderer{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"text", "html", "json"} {
		if err := r.Register(fakeRenderer{name: name}); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}

	want := []string{"html", "json", "text"}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	if !r.Has("json") || r.Has("missing") {
		t.Fatal("Has mismatch")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/renderers/htmltable"
	"github.com/goliatone/go-screenfmt/pkg/renderers/texttable"
	"github.com/goliatone/go-screenfmt/pkg/screen"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

func main() {
	_ = godotenv.Load()

	code := flag.String("code", "", "screen code to render")
	title := flag.String("title", "", "document title")
	session := flag.String("session", "", "session identifier for the data file")
	user := flag.String("user", screen.DefaultUser, "formatter owner")
	rendererName := flag.String("renderer", "texttable", "renderer to use (htmltable, texttable)")
	output := flag.String("output", "", "output file (stdout if empty)")
	debug := flag.Bool("debug", false, "read fixture data instead of session data")
	dataDir := flag.String("data-dir", envOr("SCREENFMT_DATA_DIR", "data"), "data payload directory")
	testDataDir := flag.String("test-data-dir", envOr("SCREENFMT_TEST_DATA_DIR", "testdata"), "fixture payload directory")
	fieldDir := flag.String("field-dir", envOr("SCREENFMT_FIELD_DIR", "fields"), "field definition directory")
	defaultDir := flag.String("default-dir", envOr("SCREENFMT_DEFAULT_DIR", "defaults"), "default formatter directory")
	flag.Parse()

	if *code == "" {
		log.Fatal("a screen code is required (-code)")
	}

	registry := render.NewRegistry()
	html, err := htmltable.New()
	if err != nil {
		log.Fatalf("configure html renderer: %v", err)
	}
	registry.MustRegister(html)
	registry.MustRegister(texttable.New())

	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("unknown renderer %q (have %v)", *rendererName, registry.List())
	}

	cfg := screen.Config{
		DataDir:     *dataDir,
		TestDataDir: *testDataDir,
		Fields:      screen.FieldsDir(*fieldDir),
	}
	manager := store.NewManager(store.NewMemory(), store.NewDefaultsDir(*defaultDir))

	scr := screen.New(*code, *session, cfg, manager,
		screen.WithUser(*user),
		screen.WithTitle(*title),
		screen.WithDebug(*debug),
	)

	out, err := scr.Render(context.Background(), renderer)
	if err != nil {
		log.Fatalf("render screen: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Screen written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/autotrack/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	packageKey = "package"
	typeKey    = "type"
	fieldKey   = "field"
	outKey     = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate a typed store with one observable box per field",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     packageKey,
				Usage:    "Package name of the generated file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     typeKey,
				Usage:    "Name of the generated store type",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  fieldKey,
				Usage: "Field as name:type, repeat for each field",
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file",
				Value: "store_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	store := templates.Store{
		Package: cmd.String(packageKey),
		Type:    cmd.String(typeKey),
	}
	log.Printf("Codegen for %s.%s started", store.Package, store.Type)
	defer func() {
		log.Printf("Codegen for %s.%s finished in %v", store.Package, store.Type, time.Since(start))
	}()

	for _, raw := range cmd.StringSlice(fieldKey) {
		f, err := templates.ParseField(raw)
		if err != nil {
			return err
		}
		store.Fields = append(store.Fields, f)
	}

	contents, err := render(store)
	if err != nil {
		return err
	}

	out := cmd.String(outKey)
	written, err := writeIfChanged(out, contents)
	if err != nil {
		return err
	}
	if !written {
		log.Printf("%s unchanged", out)
	}
	return nil
}

func render(store templates.Store) ([]byte, error) {
	if err := store.Validate(); err != nil {
		return nil, err
	}
	src, err := format.Source([]byte(templates.StoreGen(store)))
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", store.Type, err)
	}
	return src, nil
}

// writeIfChanged leaves path alone when it already holds contents, so
// regenerating does not touch mtimes and rebuild caches.
func writeIfChanged(path string, contents []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && xxhash.Sum64(existing) == xxhash.Sum64(contents) {
		return false, nil
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return false, err
	}
	return true, nil
}

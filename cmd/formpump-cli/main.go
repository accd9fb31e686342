package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formpump/pkg/prompt"
	"github.com/goliatone/go-formpump/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formpump/pkg/tags"
)

// dataFile is the shape of the -data YAML document.
type dataFile struct {
	Values  map[string]map[string]any `yaml:"values"`
	Errors  map[string]map[string]any `yaml:"errors"`
	Context map[string]any            `yaml:"context"`
}

// themeFile is the subset of a go-theme manifest the form tags read.
type themeFile struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

func main() {
	templatePath := flag.String("template", "", "template file to render")
	dataPath := flag.String("data", "", "YAML file with values, errors and context")
	action := flag.String("action", "", "default form action")
	formNameKey := flag.String("form-name-key", "", "hidden input name carrying the form name")
	themePath := flag.String("theme", "", "YAML theme manifest with formpump.class.* tokens")
	variant := flag.String("variant", "", "theme variant")
	interactive := flag.Bool("interactive", false, "prompt for field values before rendering")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if strings.TrimSpace(*templatePath) == "" {
		log.Fatalf("missing -template")
	}

	data, err := loadData(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	tagOptions := []tags.Option{
		tags.WithDefaultFormAction(*action),
		tags.WithFormNameKey(*formNameKey),
	}
	if *themePath != "" {
		selection, err := loadTheme(*themePath, *variant)
		if err != nil {
			log.Fatalf("Failed to load theme: %v", err)
		}
		tagOptions = append(tagOptions, tags.WithThemeSelection(selection))
	}

	dir, name := filepath.Split(*templatePath)
	if dir == "" {
		dir = "."
	}
	engineOptions := []gotemplate.Option{
		gotemplate.WithBaseDir(dir),
		gotemplate.WithTagOptions(tagOptions...),
	}
	if ext := filepath.Ext(name); ext != "" {
		engineOptions = append(engineOptions, gotemplate.WithExtension(ext))
	}
	engine, err := gotemplate.New(engineOptions...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	if filepath.Ext(name) == "" {
		content, err := os.ReadFile(*templatePath)
		if err != nil {
			log.Fatalf("Failed to read template: %v", err)
		}
		name = string(content)
	}

	if *interactive {
		fields, err := engine.Inspect(name, data.templateContext())
		if err != nil {
			log.Fatalf("Failed to inspect template: %v", err)
		}
		if err := prompt.New().Fill(context.Background(), fields, data.Values); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Fatalf("Aborted")
			}
			log.Fatalf("Failed to fill form: %v", err)
		}
	}

	html, err := engine.Render(name, data.templateContext())
	if err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(html)
	}
}

func loadData(path string) (*dataFile, error) {
	data := &dataFile{}
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if data.Values == nil {
		data.Values = make(map[string]map[string]any)
	}
	return data, nil
}

// templateContext builds the template context: the free-form entries plus
// the value and error dictionaries under the names the tags read by default.
func (d *dataFile) templateContext() map[string]any {
	out := make(map[string]any, len(d.Context)+2)
	for k, v := range d.Context {
		out[k] = v
	}
	out[tags.DefaultValueDictName] = d.Values
	if d.Errors != nil {
		out[tags.DefaultErrorDictName] = d.Errors
	}
	return out
}

func loadTheme(path, variant string) (*theme.Selection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file themeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	manifest := &theme.Manifest{
		Name:     file.Name,
		Version:  file.Version,
		Tokens:   file.Tokens,
		Variants: make(map[string]theme.Variant, len(file.Variants)),
	}
	for name, tokens := range file.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: tokens}
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", manifest.Name, variant)
		}
	}

	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

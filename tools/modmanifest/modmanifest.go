package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type manifestSource struct {
	Name string `yaml:"name"`
}

func manifestSources(names []string) []manifestSource {
	out := make([]manifestSource, len(names))
	for i, n := range names {
		out[i] = manifestSource{Name: n}
	}
	return out
}

type manifestBinarcEntry struct {
	Method string           `yaml:"method"`
	Name   string           `yaml:"name"`
	Source []manifestSource `yaml:"source"`
	Type   string           `yaml:"type"`
}

type manifestAsset struct {
	Method string                `yaml:"method"`
	Name   string                `yaml:"name"`
	Source []manifestBinarcEntry `yaml:"source"`
}

type manifest struct {
	Title          string          `yaml:"title"`
	Description    string          `yaml:"description"`
	OriginalAuthor string          `yaml:"originalAuthor"`
	Game           string          `yaml:"game,omitempty"`
	Assets         []manifestAsset `yaml:"assets"`
}

func main() {
	var root, output, title, description, author, game string
	flag.StringVar(&root, "root", "", "Directory that contains the exported files")
	flag.StringVar(&output, "o", "", "Where to write the generated mod.yml (default <root>/mod.yml)")
	flag.StringVar(&title, "title", "KH2 Spawn Data Mod", "Title written into mod.yml")
	flag.StringVar(&description, "description",
		"Auto-generated mod.yml for exported spawn points and AreaData scripts.",
		"Description written into mod.yml")
	flag.StringVar(&author, "author", "Unknown", "Original author field for the mod.yml")
	flag.StringVar(&game, "game", "kh2", "Game identifier to include, empty to omit")
	flag.Parse()

	if root == "" {
		flag.PrintDefaults()
		return
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		log.Fatalf("'%s' is not a directory", root)
	}
	if output == "" {
		output = filepath.Join(root, "mod.yml")
	}

	scan := newExportScan(root)
	if err := scan.walk(); err != nil {
		log.Fatal(err)
	}

	assets, err := scan.renderAssets()
	if err != nil {
		log.Fatal(err)
	}

	doc := &manifest{
		Title:          title,
		Description:    description,
		OriginalAuthor: author,
		Game:           game,
		Assets:         assets,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		log.Fatal(err)
	}
	if err := ioutil.WriteFile(output, data, 0666); err != nil {
		log.Fatal(err)
	}

	log.Printf("Wrote %s (spawnpoints: %d, AreaData programs: %d)", output, scan.spawned, scan.scripts)
}

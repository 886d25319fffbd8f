package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Matches the layout of a Map Studio mass export: spawn groups as
// ard/<map>/<spawn>.yml and AreaData programs as
// ard/<map>/<type>_<id>.areadataprogram, optionally below a region
// directory (jp/ard/...).

type scriptEntry struct {
	programId string
	path      string
}

// numeric ids sort before free-form ones, both ascending
func (se scriptEntry) sortKey() string {
	if n, err := strconv.Atoi(se.programId); err == nil {
		return fmt.Sprintf("0%.10d", n)
	}
	return "1" + se.programId
}

type assetBucket struct {
	regionParts []string
	mapName     string
	spawnpoints map[string]map[string]bool
	scripts     map[string][]scriptEntry
}

func (b *assetBucket) ardRelativePath() string {
	parts := append(append([]string{}, b.regionParts...), b.mapName+".ard")
	return "ard/" + strings.Join(parts, "/")
}

type exportScan struct {
	root    string
	assets  map[string]*assetBucket
	byKey   []string
	spawned int
	scripts int
}

func newExportScan(root string) *exportScan {
	return &exportScan{
		root:   root,
		assets: make(map[string]*assetBucket),
	}
}

// splitArdPath locates the "ard" directory in a relative path and
// returns the region prefix, the map directory and true on match.
func splitArdPath(relPath string) (regionParts []string, mapName string, ok bool) {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	ardIndex := -1
	for i, p := range parts {
		if p == "ard" {
			ardIndex = i
			break
		}
	}
	if ardIndex < 0 || len(parts) <= ardIndex+2 {
		return nil, "", false
	}
	return parts[:ardIndex], parts[ardIndex+1], parts[ardIndex+1] != ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *exportScan) bucket(regionParts []string, mapName string) *assetBucket {
	key := strings.Join(regionParts, "/") + "\x00" + mapName
	b, ok := s.assets[key]
	if !ok {
		b = &assetBucket{
			regionParts: regionParts,
			mapName:     mapName,
			spawnpoints: make(map[string]map[string]bool),
			scripts:     make(map[string][]scriptEntry),
		}
		s.assets[key] = b
		s.byKey = append(s.byKey, key)
	}
	return b
}

func (s *exportScan) addSpawnpoint(relPath string) {
	regionParts, mapName, ok := splitArdPath(relPath)
	if !ok {
		return
	}
	entryName := stem(relPath)
	if entryName == "" {
		return
	}

	b := s.bucket(regionParts, mapName)
	if b.spawnpoints[entryName] == nil {
		b.spawnpoints[entryName] = make(map[string]bool)
	}
	b.spawnpoints[entryName][filepath.ToSlash(relPath)] = true
	s.spawned++
}

func (s *exportScan) addScript(relPath string) {
	regionParts, mapName, ok := splitArdPath(relPath)
	if !ok {
		return
	}
	st := stem(relPath)
	sep := strings.LastIndex(st, "_")
	if sep <= 0 {
		return
	}
	programType, programId := st[:sep], st[sep+1:]

	b := s.bucket(regionParts, mapName)
	b.scripts[programType] = append(b.scripts[programType], scriptEntry{
		programId: programId,
		path:      filepath.ToSlash(relPath),
	})
	s.scripts++
}

func (s *exportScan) walk() error {
	return filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yml":
			if filepath.Base(path) != "mod.yml" {
				s.addSpawnpoint(relPath)
			}
		case ".areadataprogram":
			s.addScript(relPath)
		}
		return nil
	})
}

func sortedKeysFold(m map[string]map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	return keys
}

func (s *exportScan) renderAssets() ([]manifestAsset, error) {
	sort.Strings(s.byKey)

	var assets []manifestAsset
	for _, key := range s.byKey {
		b := s.assets[key]
		var entries []manifestBinarcEntry

		for _, spawnName := range sortedKeysFold(b.spawnpoints) {
			sources := make([]string, 0, len(b.spawnpoints[spawnName]))
			for src := range b.spawnpoints[spawnName] {
				sources = append(sources, src)
			}
			sort.Strings(sources)

			entries = append(entries, manifestBinarcEntry{
				Method: "spawnpoint",
				Name:   spawnName,
				Source: manifestSources(sources),
				Type:   "AreaDataSpawn",
			})
		}

		scriptNames := make([]string, 0, len(b.scripts))
		for name := range b.scripts {
			scriptNames = append(scriptNames, name)
		}
		sort.Slice(scriptNames, func(i, j int) bool {
			return strings.ToLower(scriptNames[i]) < strings.ToLower(scriptNames[j])
		})

		for _, scriptName := range scriptNames {
			scripts := b.scripts[scriptName]
			sort.Slice(scripts, func(i, j int) bool {
				return scripts[i].sortKey() < scripts[j].sortKey()
			})

			sources := make([]string, len(scripts))
			for i, sc := range scripts {
				sources[i] = sc.path
			}

			entries = append(entries, manifestBinarcEntry{
				Method: "areadatascript",
				Name:   scriptName,
				Source: manifestSources(sources),
				Type:   "AreaDataScript",
			})
		}

		if len(entries) == 0 {
			continue
		}
		assets = append(assets, manifestAsset{
			Method: "binarc",
			Name:   b.ardRelativePath(),
			Source: entries,
		})
	}

	if len(assets) == 0 {
		return nil, errors.New("no spawnpoint or AreaData program exports were found under the provided root")
	}
	return assets, nil
}

package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/openkh-tools/mdlx_browser/pack/bar"
	file_mdl "github.com/openkh-tools/mdlx_browser/pack/bar/mdl"
	"github.com/openkh-tools/mdlx_browser/utils"
)

var motd = `# <=======> Bar meta file <=======>
#
# All numbers in hex
# Lines format:
# kind | dup | name | saved_filename
#
# in names use @ for spaces " BONE" become @BONE
`

func entryFileName(i int, e *bar.Entry) string {
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%.3d_%.2x_%s.bin", i, e.Kind, name)
}

func UnpackBar(data []byte, outDir string, verbose bool) error {
	b, err := bar.NewFromData(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0776); err != nil {
		return err
	}
	barMeta, err := os.Create(filepath.Join(outDir, "_bar_meta_.txt"))
	if err != nil {
		return err
	}
	defer barMeta.Close()

	fmt.Fprint(barMeta, motd)
	fmt.Fprintf(barMeta, "# magic: %s\n", utils.DumpToOneLineString(b.Magic[:]))

	for i := range b.Entries {
		e := &b.Entries[i]
		fileName := entryFileName(i, e)

		if err := ioutil.WriteFile(filepath.Join(outDir, fileName), b.Data(e), 0666); err != nil {
			return err
		}

		fmt.Fprintf(barMeta, "%.4x | %.4x | %s | %s", e.Kind, e.Duplicate, metaName(e.Name), fileName)
		if e.Kind == bar.KIND_MODEL {
			fmt.Fprintf(barMeta, " # model blob")
		}
		fmt.Fprintf(barMeta, "\n")

		if verbose && e.Kind == bar.KIND_MODEL {
			mdl, err := file_mdl.NewFromData(b.Data(e))
			if err != nil {
				log.Printf("Model entry %d failed to decode: %v", i, err)
				continue
			}
			log.Print(utils.SDump(mdl))
			for _, issue := range mdl.Validate() {
				log.Printf("validation: %v", issue)
			}
		}
	}
	return nil
}

func metaName(name string) string {
	if name == "" {
		return "''"
	}
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			out = append(out, '@')
		} else {
			out = append(out, name[i])
		}
	}
	return string(out)
}

func main() {
	var inBar, outDir string
	var verbose bool
	flag.StringVar(&inBar, "bar", "", "Path to bar/mdlx file to unpack")
	flag.StringVar(&outDir, "out", "bar_content", "Path where to unpack bar file")
	flag.BoolVar(&verbose, "verbose", false, "Dump decoded model entries")
	flag.Parse()

	if inBar == "" {
		flag.PrintDefaults()
		return
	}

	data, err := ioutil.ReadFile(inBar)
	if err != nil {
		log.Fatal(err)
	}

	if err := UnpackBar(data, outDir, verbose); err != nil {
		log.Fatal(err)
	}
}

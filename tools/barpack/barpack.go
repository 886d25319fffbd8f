package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/openkh-tools/mdlx_browser/pack/bar"
)

func parseMetaLine(s string) (e bar.EntrySource, fileName string, ok bool) {
	s = strings.Split(s, "#")[0]
	s = strings.Trim(s, " \t\n")
	if s == "" {
		return e, "", false
	}

	params := strings.Split(s, "|")
	if len(params) < 4 {
		log.Fatalf("Malformed meta line %q", s)
	}

	fmt.Sscanf(strings.TrimSpace(params[0]), "%x", &e.Kind)
	fmt.Sscanf(strings.TrimSpace(params[1]), "%x", &e.Duplicate)

	name := strings.Trim(params[2], " \t")
	name = strings.Replace(name, "@", " ", -1)
	if name == "''" {
		name = ""
	}
	e.Name = name

	return e, strings.Trim(params[3], " \t"), true
}

func MakeBar(metaDir string, inMeta *bufio.Reader, outBar io.Writer) error {
	var entries []bar.EntrySource

	for {
		s, err := inMeta.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if e, fileName, ok := parseMetaLine(s); ok {
			data, rerr := ioutil.ReadFile(filepath.Join(metaDir, fileName))
			if rerr != nil {
				return rerr
			}
			e.Data = data
			entries = append(entries, e)
		}

		if err == io.EOF {
			break
		}
	}

	var magic [4]byte
	copy(magic[:], "BAR\x01")

	data, err := bar.Marshal(magic, entries)
	if err != nil {
		return err
	}
	_, err = outBar.Write(data)
	return err
}

func main() {
	var inMeta, outBar string
	flag.StringVar(&inMeta, "meta", "", "Bar meta file")
	flag.StringVar(&outBar, "out", "", "Output bar file")
	flag.Parse()

	if inMeta == "" || outBar == "" {
		flag.PrintDefaults()
		return
	}

	fMeta, err := os.Open(inMeta)
	if err != nil {
		log.Fatal(err)
	}
	defer fMeta.Close()

	fBar, err := os.Create(outBar)
	if err != nil {
		log.Fatal(err)
	}
	defer fBar.Close()

	if err := MakeBar(filepath.Dir(inMeta), bufio.NewReader(fMeta), fBar); err != nil {
		log.Fatal(err)
	}
}

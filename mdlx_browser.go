package main

import (
	"flag"
	"log"

	"github.com/openkh-tools/mdlx_browser/config"
	"github.com/openkh-tools/mdlx_browser/pack/drivers/dirdriver"
	"github.com/openkh-tools/mdlx_browser/web"

	_ "github.com/openkh-tools/mdlx_browser/pack/bar"
	_ "github.com/openkh-tools/mdlx_browser/pack/bar/mdl"
)

func main() {
	var addr, dir, encoding string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to folder with mdlx files")
	flag.StringVar(&encoding, "encoding", "", "Entry name encoding override (default strict ascii)")
	flag.Parse()

	if dir == "" {
		flag.PrintDefaults()
		return
	}

	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}

	p, err := dirdriver.NewPackFromDirectory(dir)
	if err != nil {
		log.Fatal(err)
	}

	if err := web.StartServer(addr, p, "web"); err != nil {
		log.Fatal(err)
	}
}

package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/openkh-tools/mdlx_browser/pack"
)

var ServerPack pack.PackDriver

func StartServer(addr string, p pack.PackDriver, webPath string) error {
	ServerPack = p

	r := mux.NewRouter()
	r.HandleFunc("/json/pack", HandlerAjaxPack)
	r.HandleFunc("/json/pack/{file}", HandlerAjaxPackFile)
	r.HandleFunc("/json/pack/{file}/{kind}/{dup}", HandlerAjaxPackEntry)
	r.HandleFunc("/json/skeleton/{file}", HandlerAjaxSkeleton)
	r.HandleFunc("/dump/pack/{file}", HandlerDumpPackFile)
	r.HandleFunc("/dump/pack/{file}/{kind}/{dup}", HandlerDumpPackEntry)
	r.HandleFunc("/export/gltf/{file}", HandlerExportGltf)
	r.HandleFunc("/export/fbx/{file}", HandlerExportFbx)
	r.HandleFunc("/ws/status", HandlerWsStatus)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}

package web

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/openkh-tools/mdlx_browser/pack/bar"
	file_mdl "github.com/openkh-tools/mdlx_browser/pack/bar/mdl"
	"github.com/openkh-tools/mdlx_browser/status"
	"github.com/openkh-tools/mdlx_browser/utils"
	"github.com/openkh-tools/mdlx_browser/utils/gltfutils"
	"github.com/openkh-tools/mdlx_browser/webutils"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerAjaxPack(w http.ResponseWriter, r *http.Request) {
	files := ServerPack.GetFileNamesList()
	sort.Strings(files)
	webutils.WriteJson(w, files)
}

func getBar(fileName string) (*bar.Bar, error) {
	data, err := ServerPack.GetInstance(fileName)
	if err != nil {
		return nil, err
	}
	b, ok := data.(*bar.Bar)
	if !ok {
		return nil, fmt.Errorf("File %s is not an archive", fileName)
	}
	return b, nil
}

type ajaxEntry struct {
	Kind      uint16
	Duplicate uint16
	Name      string
	Offset    uint32
	Size      uint32
}

type ajaxBar struct {
	Magic   string
	Entries []ajaxEntry
}

func HandlerAjaxPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	b, err := getBar(file)
	if err != nil {
		log.Printf("Error getting file from pack: %v", err)
		webutils.WriteError(w, err)
		return
	}

	res := &ajaxBar{Magic: utils.DumpToOneLineString(b.Magic[:])}
	for _, e := range b.Entries {
		res.Entries = append(res.Entries, ajaxEntry{
			Kind: e.Kind, Duplicate: e.Duplicate, Name: e.Name,
			Offset: e.Offset, Size: e.Size})
	}
	webutils.WriteJson(w, res)
}

func findEntry(b *bar.Bar, r *http.Request) (*bar.Entry, error) {
	kind, err := strconv.Atoi(mux.Vars(r)["kind"])
	if err != nil {
		return nil, fmt.Errorf("kind '%s' is not integer", mux.Vars(r)["kind"])
	}
	dup, err := strconv.Atoi(mux.Vars(r)["dup"])
	if err != nil {
		return nil, fmt.Errorf("dup '%s' is not integer", mux.Vars(r)["dup"])
	}

	for _, e := range b.EntriesByKind(uint16(kind)) {
		if e.Duplicate == uint16(dup) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no entry of kind %d with duplicate id %d", kind, dup)
}

func HandlerAjaxPackEntry(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	b, err := getBar(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	e, err := findEntry(b, r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	instance, err := b.CallHandler(e)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, instance)
}

type ajaxSkeleton struct {
	Model  *file_mdl.Model
	Issues []string
}

func HandlerAjaxSkeleton(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	mdl, err := getModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	res := &ajaxSkeleton{Model: mdl}
	for _, issue := range mdl.Validate() {
		res.Issues = append(res.Issues, issue.String())
	}
	webutils.WriteJson(w, res)
}

func getModel(fileName string) (*file_mdl.Model, error) {
	b, err := getBar(fileName)
	if err != nil {
		return nil, err
	}
	blob, err := b.ModelData()
	if err != nil {
		return nil, err
	}
	return file_mdl.NewFromData(blob)
}

func HandlerDumpPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, err := ServerPack.GetFileData(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFileData(w, data, file)
}

func HandlerDumpPackEntry(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	b, err := getBar(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	e, err := findEntry(b, r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFileData(w, b.Data(e), fmt.Sprintf("%s_%d_%s.bin", file, e.Kind, e.Name))
}

func HandlerExportGltf(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	mdl, err := getModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	doc, err := mdl.ExportGLTFDefault()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	webutils.WriteFileHeaders(w, file+".glb")
	if err := gltfutils.ExportBinary(w, doc); err != nil {
		log.Printf("Error writing gltf of %s: %v", file, err)
	}
	status.Info("Exported %s as glTF", file)
}

func HandlerExportFbx(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	mdl, err := getModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	f, err := mdl.ExportFbxDefault(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	webutils.WriteFileHeaders(w, file+".fbx")
	if err := f.Write(w); err != nil {
		log.Printf("Error writing fbx of %s: %v", file, err)
	}
	status.Info("Exported %s as FBX", file)
}

func HandlerWsStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}

package dirdriver

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path"

	"github.com/openkh-tools/mdlx_browser/pack"
)

type DirDriver struct {
	Path  string
	Cache *pack.InstanceCache
}

func (d *DirDriver) GetFileNamesList() []string {
	fileinfos, err := ioutil.ReadDir(d.Path)
	if err != nil {
		log.Printf("[pack] Error getting directory '%s' info: %v", d.Path, err)
		return nil
	}
	result := make([]string, 0)
	for _, f := range fileinfos {
		if !f.IsDir() {
			result = append(result, f.Name())
		}
	}
	return result
}

func (d *DirDriver) GetFile(fileName string) (pack.PackFile, error) {
	info, err := os.Stat(path.Join(d.Path, fileName))
	if err != nil {
		return nil, fmt.Errorf("Error file stat: %v", err)
	}
	return info, nil
}

func (d *DirDriver) GetFileData(fileName string) ([]byte, error) {
	data, err := ioutil.ReadFile(path.Join(d.Path, fileName))
	if err != nil {
		return nil, fmt.Errorf("Error reading file: %v", err)
	}
	return data, nil
}

func (d *DirDriver) GetInstance(fileName string) (interface{}, error) {
	return pack.GetInstanceCachedHandler(d, d.Cache, fileName)
}

func NewPackFromDirectory(dirPath string) (*DirDriver, error) {
	if info, err := os.Stat(dirPath); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", dirPath)
	}
	return &DirDriver{
		Path:  dirPath,
		Cache: &pack.InstanceCache{},
	}, nil
}

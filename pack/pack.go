package pack

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type PackFile interface {
	Name() string
	Size() int64
}

// PackDriver is a source of game files. Decoders want the whole file
// resident, so drivers hand out complete buffers, not readers.
type PackDriver interface {
	GetFileNamesList() []string
	GetFile(fileName string) (PackFile, error)
	GetFileData(fileName string) ([]byte, error)
	GetInstance(fileName string) (interface{}, error)
}

type FileLoader func(fileName string, data []byte) (interface{}, error)

var gHandlers map[string]FileLoader = make(map[string]FileLoader, 0)

func SetHandler(ext string, ldr FileLoader) {
	gHandlers[strings.ToUpper(ext)] = ldr
}

func CallHandler(fileName string, data []byte) (interface{}, error) {
	ext := strings.ToUpper(filepath.Ext(fileName))
	if h, found := gHandlers[ext]; found {
		return h(fileName, data)
	}
	return nil, errors.Errorf("[pack] Cannot find handler for '%s' extension", ext)
}

type InstanceCache struct {
	mu        sync.Mutex
	instances map[string]interface{}
}

func (c *InstanceCache) Get(fileName string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.instances[fileName]
}

func (c *InstanceCache) Put(fileName string, instance interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.instances == nil {
		c.instances = make(map[string]interface{})
	}
	c.instances[fileName] = instance
}

// GetInstanceCachedHandler decodes a file through its extension handler,
// reusing an already decoded instance when the cache has one.
func GetInstanceCachedHandler(d PackDriver, c *InstanceCache, fileName string) (interface{}, error) {
	if inst := c.Get(fileName); inst != nil {
		return inst, nil
	}

	data, err := d.GetFileData(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot read '%s'", fileName)
	}

	inst, err := CallHandler(fileName, data)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Handler error for '%s'", fileName)
	}

	c.Put(fileName, inst)
	return inst, nil
}

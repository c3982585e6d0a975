package kv

import (
	"context"
	"sync"

	"github.com/cinedex/cinedex/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// File keeps every key in one JSON object on disk.
type File struct {
	cache *gache.Cache[map[string]string]
	mu    sync.Mutex
}

// NewFile opens (lazily) the JSON file at path.
func NewFile(path string) *File {
	return &File{
		cache: gache.New[map[string]string](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (f *File) load() (map[string]string, error) {
	data, expired, err := f.cache.Get()
	if err != nil {
		return nil, err
	}
	if expired || data == nil {
		return make(map[string]string), nil
	}
	return data, nil
}

func (f *File) Get(_ context.Context, key string) (mo.Option[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return mo.None[string](), err
	}

	if value, ok := data[key]; ok {
		return mo.Some(value), nil
	}
	return mo.None[string](), nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	data[key] = value
	return f.cache.Set(data)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)
	return f.cache.Set(data)
}

func (f *File) Close() error {
	return nil
}

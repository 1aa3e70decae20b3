package storage

import (
	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each key as its own file under the base path.
type Diskv struct{ d *diskv.Diskv }

func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *Diskv) Get(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func (s *Diskv) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *Diskv) Close() error { return nil }

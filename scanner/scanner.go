// Package scanner collects the source files a lint or fix run operates on.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultExtensions are the file extensions scanned when none are given.
var DefaultExtensions = []string{".swift"}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	root       string
	extensions []string
}

// New creates a scanner rooted at root. The root may be a single file, in
// which case Scan returns just that file when it matches.
func New(root string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Scanner{
		root:       root,
		extensions: extensions,
	}
}

// Scan walks the root and returns every matching file, sorted by path so
// runs are deterministic.
func (s *Scanner) Scan() ([]FileInfo, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !s.isTargetFile(s.root) {
			return nil, nil
		}
		return []FileInfo{{Path: s.root, Size: info.Size()}}, nil
	}

	var (
		files []FileInfo
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	err = filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isTargetFile(path) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fileInfo := FileInfo{
					Path: path,
					Size: info.Size(),
				}
				mutex.Lock()
				files = append(files, fileInfo)
				mutex.Unlock()
			}()
		}
		return nil
	})

	wg.Wait()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}

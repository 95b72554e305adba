package tomlform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	formFileMode    = 0o600
	formDirMode     = 0o700
	tempFilePattern = ".form-*.toml.tmp"
)

// Surface is an input surface backed by a TOML form file. Field edits stay in
// memory until Save; Reset clears both memory and file.
type Surface struct {
	path   string
	mu     *sync.RWMutex
	values domain.FormValues
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.InputSurface = (*Surface)(nil)

func Open(path string) (*Surface, error) {
	formPath, err := normalizeFormPath(path)
	if err != nil {
		return nil, err
	}

	s := &Surface{path: formPath, mu: lockForPath(formPath)}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}
	s.values = fromSchema(file.Form)

	return s, nil
}

// Init writes an empty form file at path. It refuses to overwrite.
func Init(path string) (*Surface, error) {
	formPath, err := normalizeFormPath(path)
	if err != nil {
		return nil, err
	}

	s := &Surface{path: formPath, mu: lockForPath(formPath)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(formPath); err == nil {
		return nil, fmt.Errorf("form file %s already exists", formPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat form file: %w", err)
	}

	if err := s.writeSchema(fileSchema{}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Surface) Path() string {
	return s.path
}

func (s *Surface) Value(field domain.Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values.Get(field)
}

func (s *Surface) SetValue(field domain.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values.Set(field, value)
}

func (s *Surface) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSchema(fileSchema{Form: toSchema(s.values)})
}

func (s *Surface) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = domain.FormValues{}
	return s.writeSchema(fileSchema{})
}

func (s *Surface) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, fmt.Errorf("%w: %s", domain.ErrFormNotFound, s.path)
		}
		return fileSchema{}, fmt.Errorf("read form file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode form file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Surface) writeSchema(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode form file: %w", err)
	}

	return replaceFile(s.path, data)
}

// replaceFile swaps path for a file holding data, so readers never observe a
// partially written form.
func replaceFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, formDirMode); err != nil {
		return fmt.Errorf("create form directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("stage form file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	err = tmp.Chmod(formFileMode)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("stage form file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace form file: %w", err)
	}
	return nil
}

func normalizeFormPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("form path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve form path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

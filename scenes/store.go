package scenes

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

var ErrNoSceneList = errors.New("*scene_list command couldn't be found")

// Store keeps the manifest and parsed scenes of one container across
// explore calls. Opening another container or a changed file replaces the
// catalog instead of mutating it.
type Store struct {
	options Options
	logger  *slog.Logger

	mu      sync.Mutex
	catalog *catalog
}

type catalog struct {
	path    string
	modTime time.Time
	size    int64
	entries []entry
	byName  map[string]entry

	mu        sync.Mutex
	scenes    map[string]*Scene
	sceneList []string
}

func NewStore(options Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		options: options,
		logger:  logger,
	}
}

func (s *Store) Options() Options {
	return s.options
}

// Open opens the container for one walk. The returned session must be closed.
func (s *Store) Open(path string) (_ *Session, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrap(err)
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()
	info, err := file.Stat()
	if err != nil {
		return nil, wrap(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalog
	if c == nil ||
		c.path != path ||
		!c.modTime.Equal(info.ModTime()) ||
		c.size != info.Size() {
		entries, err := readManifest(file, info.Size(), s.options)
		if err != nil {
			return nil, fmt.Errorf("container %s: %w", path, err)
		}
		c = &catalog{
			path:    path,
			modTime: info.ModTime(),
			size:    info.Size(),
			entries: entries,
			byName:  make(map[string]entry, len(entries)),
			scenes:  make(map[string]*Scene),
		}
		for _, e := range entries {
			c.byName[e.Name] = e
		}
		s.catalog = c
		s.logger.Info("container manifest read",
			"path", path,
			"scenes", len(entries),
		)
	}

	return &Session{
		store:   s,
		file:    file,
		catalog: c,
	}, nil
}

// Invalidate drops parsed scenes, keeping the manifest.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return
	}
	old := s.catalog
	s.catalog = &catalog{
		path:    old.path,
		modTime: old.modTime,
		size:    old.size,
		entries: old.entries,
		byName:  old.byName,
		scenes:  make(map[string]*Scene),
	}
	s.logger.Debug("scene cache invalidated", "path", old.path)
}

// Session reads scenes from an open container.
type Session struct {
	store   *Store
	file    *os.File
	catalog *catalog
}

func (s *Session) Close() error {
	return s.file.Close()
}

// Names returns the scene names in manifest order.
func (s *Session) Names() []string {
	return lo.Map(s.catalog.entries, func(e entry, _ int) string {
		return e.Name
	})
}

// Scene returns a parsed scene. The result is shared and must not be modified.
func (s *Session) Scene(name string) (*Scene, error) {
	c := s.catalog
	c.mu.Lock()
	scene, ok := c.scenes[name]
	c.mu.Unlock()
	if ok {
		return scene, nil
	}

	e, ok := c.byName[name]
	if !ok {
		e, ok = lo.Find(c.entries, func(e entry) bool {
			return strings.EqualFold(e.Name, name)
		})
	}
	if !ok {
		return nil, wrap(&NotFoundError{
			Kind:  "Scene",
			Name:  name,
			Known: s.Names(),
		})
	}

	scene, err := loadScene(s.file, e, s.store.logger)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if existing, ok := c.scenes[e.Name]; ok {
		scene = existing
	} else {
		c.scenes[e.Name] = scene
	}
	c.scenes[name] = scene
	c.mu.Unlock()
	return scene, nil
}

// SceneList returns the scene order declared in the startup scene.
func (s *Session) SceneList() ([]string, error) {
	c := s.catalog
	c.mu.Lock()
	list := c.sceneList
	c.mu.Unlock()
	if list != nil {
		return list, nil
	}

	startup := s.store.options.Startup
	scene, err := s.Scene(startup)
	if err != nil {
		return nil, err
	}
	list, ok := scene.SceneList()
	if !ok {
		return nil, fmt.Errorf("%w in %s.txt", ErrNoSceneList, startup)
	}
	if list == nil {
		list = []string{}
	}
	c.mu.Lock()
	c.sceneList = list
	c.mu.Unlock()
	return list, nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/saga/pkg/entry"
)

// ErrNotFound is returned when no entry with the requested id exists.
var ErrNotFound = errors.New("store: entry not found")

// Persistence is the storage contract for journal entries. Each call is
// atomic: on error the stored collection is unchanged.
type Persistence interface {
	List(ctx context.Context) []*entry.Entry
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Create(ctx context.Context, e *entry.Entry) (*entry.Entry, error)
	Update(ctx context.Context, id string, e *entry.Entry) (*entry.Entry, error)
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = keyToPathTransform(key).FileName
	}
	return e, nil
}

func (p *persistence) List(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*entry.Entry, error) {
	key, err := p.keyForID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.read(key)
}

func (p *persistence) Create(_ context.Context, e *entry.Entry) (*entry.Entry, error) {
	if e.ID != "" {
		return nil, fmt.Errorf("store: entry already has id %s", e.ID)
	}
	stored := *e
	// Dashes are the key separator, so store the uuid without them.
	stored.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := p.write(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (p *persistence) Update(ctx context.Context, id string, e *entry.Entry) (*entry.Entry, error) {
	oldKey, err := p.keyForID(ctx, id)
	if err != nil {
		return nil, err
	}
	stored := *e
	stored.ID = id
	if err := p.write(&stored); err != nil {
		return nil, err
	}
	// A changed date moves the entry to another day bucket on disk.
	if newKey := toKey(&stored); newKey != oldKey {
		if err := p.d.Erase(oldKey); err != nil {
			fmt.Fprintf(os.Stderr, "store: erase stale key %s: %v\n", oldKey, err)
		}
	}
	return &stored, nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	key, err := p.keyForID(ctx, id)
	if err != nil {
		return err
	}
	return p.d.Erase(key)
}

func (p *persistence) write(e *entry.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(e), data)
}

func (p *persistence) keyForID(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrNotFound
	}
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName == id {
			return key, nil
		}
	}
	return "", ErrNotFound
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		lt := left.Date.Time
		rt := right.Date.Time
		if lt.Equal(rt) {
			return left.ID < right.ID
		}
		return lt.After(rt)
	})
}

// Keys look like `2006-01-02-<id>`; diskv stores them under nested
// year/month/day directories with the id as the file name.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(e *entry.Entry) string {
	return fmt.Sprintf("%s-%s", e.Date.DayKey(), e.ID)
}

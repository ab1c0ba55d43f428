package lookup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
)

// Cache is the on-disk context cache.
type Cache struct {
	path    string
	mu      sync.Mutex
	entries map[string]*awsplatform.VPCInfo
	dirty   bool
}

// Open reads the cache at path. A missing file yields an empty cache.
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]*awsplatform.VPCInfo)}

	data, err := os.ReadFile(path) //nolint:gosec // path is the configured context file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read context file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("failed to parse context file %s: %w", path, err)
	}
	if c.entries == nil {
		c.entries = make(map[string]*awsplatform.VPCInfo)
	}
	return c, nil
}

// Path returns the file backing the cache.
func (c *Cache) Path() string {
	return c.path
}

// Get returns a copy of the cached value for key.
func (c *Cache) Get(key string) (*awsplatform.VPCInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if !ok || v == nil {
		return nil, false
	}
	cp := cloneVPC(v)
	return cp, true
}

// Put stores a value for key.
func (c *Cache) Put(key string, info *awsplatform.VPCInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cloneVPC(info)
	c.dirty = true
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the cache if it changed since Open.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	data, err := yaml.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create context directory: %w", err)
		}
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context file %s: %w", c.path, err)
	}
	c.dirty = false
	return nil
}

// Clear drops all entries and removes the file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*awsplatform.VPCInfo)
	c.dirty = false
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove context file %s: %w", c.path, err)
	}
	return nil
}

func cloneVPC(v *awsplatform.VPCInfo) *awsplatform.VPCInfo {
	cp := *v
	cp.AvailabilityZones = append([]string(nil), v.AvailabilityZones...)
	cp.PublicSubnetIDs = append([]string(nil), v.PublicSubnetIDs...)
	cp.PrivateSubnetIDs = append([]string(nil), v.PrivateSubnetIDs...)
	return &cp
}

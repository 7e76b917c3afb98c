package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore keeps the JSON tree in process with the same revision
// semantics the database exposes remotely. It backs tests and local
// development runs.
type MemoryStore struct {
	mu      sync.Mutex
	root    map[string]interface{}
	revs    map[string]uint64
	counter uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root: make(map[string]interface{}),
		revs: make(map[string]uint64),
	}
}

func (s *MemoryStore) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	_, found, err := s.GetRev(ctx, path, out)
	return found, err
}

func (s *MemoryStore) GetRev(ctx context.Context, path string, out interface{}) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := clean(path)
	// track the path so later writes to relatives advance its revision
	s.revs[p] = s.revs[p]
	rev := strconv.FormatUint(s.revs[p], 10)

	node, ok := s.lookup(p)
	if !ok || node == nil {
		return rev, false, nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return "", false, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	return rev, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(path, value)
}

func (s *MemoryStore) SetRev(ctx context.Context, path string, value interface{}, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strconv.FormatUint(s.revs[clean(path)], 10) != rev {
		return ErrConflict
	}
	return s.put(path, value)
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.lookup(clean(path))
	merged := make(map[string]interface{})
	if ok {
		if existing, isObj := node.(map[string]interface{}); isObj {
			for k, v := range existing {
				merged[k] = v
			}
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return s.put(path, merged)
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(clean(path))
	s.bump(clean(path))
	return nil
}

func (s *MemoryStore) DeleteRev(ctx context.Context, path string, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strconv.FormatUint(s.revs[clean(path)], 10) != rev {
		return ErrConflict
	}
	s.remove(clean(path))
	s.bump(clean(path))
	return nil
}

// put normalizes value through JSON so the tree holds the same shapes a
// remote store would return.
func (s *MemoryStore) put(path string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	var node interface{}
	if err := json.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	p := clean(path)
	segs := strings.Split(p, "/")
	cur := s.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := cur[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			cur[seg] = child
		}
		cur = child
	}
	cur[segs[len(segs)-1]] = node

	s.bump(p)
	return nil
}

func (s *MemoryStore) lookup(path string) (interface{}, bool) {
	segs := strings.Split(path, "/")
	var cur interface{} = s.root
	for _, seg := range segs {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (s *MemoryStore) remove(path string) {
	segs := strings.Split(path, "/")
	cur := s.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := cur[seg].(map[string]interface{})
		if !ok {
			return
		}
		cur = child
	}
	delete(cur, segs[len(segs)-1])
}

// bump advances the revision of path and of every tracked path whose
// subtree the write touched, mirroring how remote ETags change for
// ancestors and descendants alike.
func (s *MemoryStore) bump(path string) {
	s.counter++
	s.revs[path] = s.counter
	for k := range s.revs {
		if k == path {
			continue
		}
		if strings.HasPrefix(k, path+"/") || strings.HasPrefix(path, k+"/") {
			s.revs[k] = s.counter
		}
	}
}

func clean(path string) string {
	return strings.Trim(path, "/")
}

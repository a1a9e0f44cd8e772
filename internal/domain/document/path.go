package document

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitPath splits a dot-separated path into its segments.
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
	}
	return segs, nil
}

// Get reads the value at path. The boolean is false when any segment is absent.
func (d Document) Get(path string) (any, bool) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, false
	}

	var cur any = map[string]any(d)
	for _, seg := range segs {
		next, ok, err := child(cur, seg)
		if err != nil || !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set assigns value at path. Missing intermediate keys are created as empty
// objects. The final segment may address an array element by index; an index
// equal to the array length appends.
func (d Document) Set(path string, value any) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}

	_, err = mutate(map[string]any(d), segs, newObject, func(parent any, key string) (any, error) {
		return assign(parent, key, value)
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", path, err)
	}
	return nil
}

// Push appends item to the array at path. A missing last segment becomes an
// empty array. A missing intermediate becomes an array when the segment after
// it is an index and an object otherwise.
func (d Document) Push(path string, item any) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}

	_, err = mutate(map[string]any(d), segs, containerFor, func(parent any, key string) (any, error) {
		arr, err := arrayAt(parent, key)
		if err != nil {
			return nil, err
		}
		return assign(parent, key, append(arr, item))
	})
	if err != nil {
		return fmt.Errorf("push %q: %w", path, err)
	}
	return nil
}

// RemoveAt removes the element at index from the array at path. Missing
// segments are created as Push creates them. An index outside [0, len) leaves
// the array untouched and reports false.
func (d Document) RemoveAt(path string, index int) (bool, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return false, err
	}

	removed := false
	_, err = mutate(map[string]any(d), segs, containerFor, func(parent any, key string) (any, error) {
		arr, err := arrayAt(parent, key)
		if err != nil {
			return nil, err
		}
		if index >= 0 && index < len(arr) {
			arr = append(arr[:index:index], arr[index+1:]...)
			removed = true
		}
		return assign(parent, key, arr)
	})
	if err != nil {
		return false, fmt.Errorf("remove %q[%d]: %w", path, index, err)
	}
	return removed, nil
}

func newObject(string) any { return map[string]any{} }

// containerFor picks the container for a missing segment from the segment
// that will address into it.
func containerFor(next string) any {
	if _, err := index(next); err == nil {
		return []any{}
	}
	return map[string]any{}
}

// mutate walks segs from node, creating absent containers with create, and
// hands the parent of the last segment to leaf. Containers are written back on
// the way up so appends to nested arrays reach the root. Nothing is written if
// any step fails.
func mutate(node any, segs []string, create func(next string) any, leaf func(parent any, key string) (any, error)) (any, error) {
	key := segs[0]
	if len(segs) == 1 {
		return leaf(node, key)
	}

	next, ok, err := child(node, key)
	if err != nil {
		return nil, err
	}
	if !ok || next == nil {
		next = create(segs[1])
	}
	if !isContainer(next) {
		return nil, fmt.Errorf("%w: %q holds %T", ErrShapeMismatch, key, next)
	}

	next, err = mutate(next, segs[1:], create, leaf)
	if err != nil {
		return nil, err
	}
	return assign(node, key, next)
}

// arrayAt returns the array stored under key, or an empty one when absent.
func arrayAt(parent any, key string) ([]any, error) {
	cur, ok, err := child(parent, key)
	if err != nil {
		return nil, err
	}
	if !ok || cur == nil {
		return []any{}, nil
	}
	arr, isArr := cur.([]any)
	if !isArr {
		return nil, fmt.Errorf("%w: %q holds %T, want array", ErrShapeMismatch, key, cur)
	}
	return arr, nil
}

func child(node any, key string) (any, bool, error) {
	switch c := node.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok, nil
	case Document:
		v, ok := c[key]
		return v, ok, nil
	case []any:
		idx, err := index(key)
		if err != nil {
			return nil, false, err
		}
		if idx >= len(c) {
			return nil, false, nil
		}
		return c[idx], true, nil
	default:
		return nil, false, fmt.Errorf("%w: cannot read %q from %T", ErrShapeMismatch, key, node)
	}
}

func assign(node any, key string, value any) (any, error) {
	switch c := node.(type) {
	case map[string]any:
		c[key] = value
		return c, nil
	case Document:
		c[key] = value
		return c, nil
	case []any:
		idx, err := index(key)
		if err != nil {
			return nil, err
		}
		switch {
		case idx < len(c):
			c[idx] = value
			return c, nil
		case idx == len(c):
			return append(c, value), nil
		default:
			return nil, fmt.Errorf("%w: index %d beyond array length %d", ErrInvalidPath, idx, len(c))
		}
	default:
		return nil, fmt.Errorf("%w: cannot assign %q on %T", ErrShapeMismatch, key, node)
	}
}

func index(key string) (int, error) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: %q is not an array index", ErrInvalidPath, key)
	}
	return idx, nil
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, Document, []any:
		return true
	}
	return false
}

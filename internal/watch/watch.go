package watch

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// defaultKind is assumed when a watch entry carries no kind.
const defaultKind = "deployment"

// Entry is one configured watch target. Kind is optional and matched
// case-insensitively; namespace and name are required.
type Entry struct {
	Kind      string `json:"kind,omitempty"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// Parse decodes a watch-list document. YAML and JSON are both accepted.
func Parse(doc []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal watch list: %w", err)
	}

	return entries, nil
}

// LoadFile reads and decodes a watch-list document from disk.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watch list file: %w", err)
	}

	return Parse(data)
}

type pair struct {
	namespace string
	name      string
}

// Index answers "is this resource in scope" queries. It is built once at
// startup and read-only afterwards, so it is safe to share across collectors.
type Index struct {
	pairsByKind map[string]map[pair]struct{}
	namespaces  map[string]struct{}
	size        int
}

// NewIndex validates entries and builds the lookup index. Entries with an
// empty namespace or name are a startup error, not a skip.
func NewIndex(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyWatchList
	}

	idx := &Index{
		pairsByKind: make(map[string]map[pair]struct{}),
		namespaces:  make(map[string]struct{}),
	}

	for i, entry := range entries {
		if entry.Namespace == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyNamespace)
		}

		if entry.Name == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}

		kind := strings.ToLower(entry.Kind)
		if kind == "" {
			kind = defaultKind
		}

		pairs, ok := idx.pairsByKind[kind]
		if !ok {
			pairs = make(map[pair]struct{})
			idx.pairsByKind[kind] = pairs
		}

		pairs[pair{namespace: entry.Namespace, name: entry.Name}] = struct{}{}
		idx.namespaces[entry.Namespace] = struct{}{}
		idx.size++
	}

	return idx, nil
}

// IsWatched reports whether (namespace, name) is in scope for kind.
//
// A kind with at least one explicit entry matches exactly on (namespace, name).
// A kind that was never configured falls back to namespace-only matching: it is
// watched whenever any entry, of any kind, mentions the namespace.
func (i *Index) IsWatched(kind, namespace, name string) bool {
	pairs := i.pairsByKind[strings.ToLower(kind)]
	if len(pairs) > 0 {
		_, ok := pairs[pair{namespace: namespace, name: name}]

		return ok
	}

	return i.HasNamespace(namespace)
}

// HasNamespace reports whether any watch entry mentions namespace.
func (i *Index) HasNamespace(namespace string) bool {
	_, ok := i.namespaces[namespace]

	return ok
}

// Size returns the number of configured watch entries.
func (i *Index) Size() int {
	return i.size
}

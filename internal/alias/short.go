// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"fmt"
	"sort"

	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/meta"
	"github.com/cmdkeep/cmdkeep/internal/store"
)

// ReservedVerbs are CLI command names that can never be used as short
// aliases: a short alias shadowing a verb would make `cmdkeep <verb>`
// ambiguous.
var ReservedVerbs = []Name{
	"save", "run", "list", "show", "rm",
	"link", "unlink", "recent", "export", "import",
	"config", "completion", "help", "version",
}

// Shortcuts is the short-alias indirection: a name-to-name map stored in the
// metadata table that lets `b` mean `build-prod`. Short aliases only redirect
// lookups; the target alias remains the canonical record.
type Shortcuts struct {
	st *store.Store
}

// NewShortcuts creates a Shortcuts layer over the metadata store.
func NewShortcuts(st *store.Store) *Shortcuts {
	return &Shortcuts{st: st}
}

func (s *Shortcuts) load() (*meta.Table, map[string]string, error) {
	tbl, err := meta.Open(s.st)
	if err != nil {
		return nil, nil, err
	}
	m, ok, err := meta.Get[map[string]string](tbl, meta.KeyShortAliases)
	if err != nil {
		return nil, nil, err
	}
	if !ok || m == nil {
		m = map[string]string{}
	}
	return tbl, m, nil
}

func (s *Shortcuts) save(tbl *meta.Table, m map[string]string) error {
	if err := meta.Set(tbl, meta.KeyShortAliases, m); err != nil {
		return err
	}
	return tbl.Save()
}

// Resolve maps a short alias to its target name. Unknown names resolve to
// themselves: the caller cannot tell (and does not need to tell) whether
// indirection happened.
func (s *Shortcuts) Resolve(name Name) (Name, error) {
	_, m, err := s.load()
	if err != nil {
		return name, err
	}
	if target, ok := m[string(name)]; ok {
		return Name(target), nil
	}
	return name, nil
}

// Create points short at target. The target must already exist in the
// registry and short must not collide with a reserved verb. Creating over an
// existing short alias silently re-points it.
func (s *Shortcuts) Create(short, target Name, reg *Registry) error {
	if isValid, errs := short.IsValid(); !isValid {
		return fmt.Errorf("%w: %w", issue.ErrInvalidInput, errs[0])
	}
	for _, verb := range ReservedVerbs {
		if short == verb {
			return fmt.Errorf("%w: %q is a reserved command name", issue.ErrInvalidInput, short)
		}
	}

	exists, err := reg.Exists(target)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("target alias %q: %w", target, issue.ErrNotFound)
	}

	tbl, m, err := s.load()
	if err != nil {
		return err
	}
	m[string(short)] = string(target)
	return s.save(tbl, m)
}

// Remove deletes a short alias. Removing an unknown short alias is an
// InvalidInput error: the caller named something that was never created.
func (s *Shortcuts) Remove(short Name) error {
	tbl, m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[string(short)]; !ok {
		return fmt.Errorf("%w: short alias %q not found", issue.ErrInvalidInput, short)
	}
	delete(m, string(short))
	return s.save(tbl, m)
}

// List returns the short-alias map.
func (s *Shortcuts) List() (map[Name]Name, error) {
	_, m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[Name]Name, len(m))
	for short, target := range m {
		out[Name(short)] = Name(target)
	}
	return out, nil
}

// Dangling returns the short aliases whose target no longer exists in the
// registry, sorted by short name. Dangling mappings are tolerated — the
// target may be re-created — so callers warn about them, never fail.
func (s *Shortcuts) Dangling(reg *Registry) ([]Name, error) {
	_, m, err := s.load()
	if err != nil {
		return nil, err
	}
	t, err := reg.List()
	if err != nil {
		return nil, err
	}

	var dangling []Name
	for short, target := range m {
		if _, ok := t[Name(target)]; !ok {
			dangling = append(dangling, Name(short))
		}
	}
	sort.Slice(dangling, func(i, j int) bool { return dangling[i] < dangling[j] })
	return dangling, nil
}

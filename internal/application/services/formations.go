package services

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

// formationList returns data.formations.items, empty when absent.
func formationList(data document.Document) ([]any, error) {
	raw, ok := data.Get(entities.FormationsPath)
	if !ok || raw == nil {
		return []any{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", document.ErrShapeMismatch, entities.FormationsPath, raw)
	}
	return list, nil
}

func formationIndex(list []any, id string) int {
	for i, item := range list {
		if m, ok := item.(map[string]any); ok && idString(m["id"]) == id {
			return i
		}
	}
	return -1
}

func itemPath(base string, idx int) string {
	return base + "." + strconv.Itoa(idx)
}

// Formations returns the formation catalogue in display order.
func (s *StoreService) Formations() ([]entities.Formation, error) {
	s.mu.RLock()
	list, err := formationList(s.data)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	list = document.Clone(list).([]any)
	s.mu.RUnlock()

	return decodeEach[entities.Formation](s.logger, "formation", list), nil
}

// decodeEach decodes every item of list into T. Items that do not decode are
// logged and left out so one malformed entry does not hide the rest.
func decodeEach[T any](log *logger.Logger, kind string, list []any) []T {
	out := make([]T, 0, len(list))
	for i, item := range list {
		var v T
		if err := document.As(item, &v); err != nil {
			log.Warnw("Skipping malformed "+kind, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// AddFormation appends f to the catalogue. A missing id is generated.
func (s *StoreService) AddFormation(f entities.Formation) (entities.Formation, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	err := s.apply(change{kind: entities.ChangeMutation, op: "add_formation", file: entities.FileData, path: entities.FormationsPath}, func() error {
		list, err := formationList(s.data)
		if err != nil {
			return err
		}
		if formationIndex(list, f.ID) >= 0 {
			return fmt.Errorf("%w: %s", entities.ErrDuplicateFormation, f.ID)
		}
		if err := s.data.Push(entities.FormationsPath, f.Fields()); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
	if err != nil {
		return entities.Formation{}, err
	}
	return f, nil
}

// UpdateFormation replaces the known fields of the formation with the same id.
// Fields the dashboard does not model are kept.
func (s *StoreService) UpdateFormation(f entities.Formation) (entities.Formation, error) {
	err := s.apply(change{kind: entities.ChangeMutation, op: "update_formation", file: entities.FileData, path: entities.FormationsPath}, func() error {
		list, err := formationList(s.data)
		if err != nil {
			return err
		}
		idx := formationIndex(list, f.ID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", entities.ErrFormationNotFound, f.ID)
		}
		merged := document.Clone(list[idx]).(map[string]any)
		for k, v := range f.Fields() {
			merged[k] = v
		}
		if err := s.data.Set(itemPath(entities.FormationsPath, idx), merged); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
	if err != nil {
		return entities.Formation{}, err
	}
	return f, nil
}

// RemoveFormation deletes the formation with id.
func (s *StoreService) RemoveFormation(id string) error {
	return s.apply(change{kind: entities.ChangeMutation, op: "remove_formation", file: entities.FileData, path: entities.FormationsPath}, func() error {
		list, err := formationList(s.data)
		if err != nil {
			return err
		}
		idx := formationIndex(list, id)
		if idx < 0 {
			return fmt.Errorf("%w: %s", entities.ErrFormationNotFound, id)
		}
		if _, err := s.data.RemoveAt(entities.FormationsPath, idx); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
}

// SetFormationVisibility toggles whether the formation is shown on the home
// page and in the navbar.
func (s *StoreService) SetFormationVisibility(id string, visible bool) error {
	return s.apply(change{kind: entities.ChangeMutation, op: "set_formation_visibility", file: entities.FileData, path: entities.FormationsPath}, func() error {
		list, err := formationList(s.data)
		if err != nil {
			return err
		}
		idx := formationIndex(list, id)
		if idx < 0 {
			return fmt.Errorf("%w: %s", entities.ErrFormationNotFound, id)
		}
		if err := s.data.Set(itemPath(entities.FormationsPath, idx)+".showOnHome", visible); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
}

// MoveFormation moves the formation at from to position to.
func (s *StoreService) MoveFormation(from, to int) error {
	return s.apply(change{kind: entities.ChangeMutation, op: "move_formation", file: entities.FileData, path: entities.FormationsPath}, func() error {
		list, err := formationList(s.data)
		if err != nil {
			return err
		}
		if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
			return fmt.Errorf("%w: move %d to %d in %d formations", entities.ErrIndexOutOfRange, from, to, len(list))
		}

		item := list[from]
		rest := append(list[:from:from], list[from+1:]...)
		moved := make([]any, 0, len(list))
		moved = append(moved, rest[:to]...)
		moved = append(moved, item)
		moved = append(moved, rest[to:]...)

		if err := s.data.Set(entities.FormationsPath, moved); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
}

// Navbar returns the navbar links.
func (s *StoreService) Navbar() ([]entities.NavbarLink, error) {
	s.mu.RLock()
	raw, _ := s.data.Get(entities.NavbarLinksPath)
	raw = document.Clone(raw)
	s.mu.RUnlock()

	out := []entities.NavbarLink{}
	if raw == nil {
		return out, nil
	}
	if err := document.As(raw, &out); err != nil {
		return nil, fmt.Errorf("decode navbar: %w", err)
	}
	return out, nil
}

// SyncNavbar rebuilds the formations submenu on demand. It reports whether the
// navbar changed; an unchanged navbar leaves the dirty flag alone.
func (s *StoreService) SyncNavbar() bool {
	return s.syncNavbar("sync_navbar", func() {
		SyncNavbarFormations(s.data)
	})
}

// SyncNavbarTitles copies page titles from datap onto the formations submenu.
func (s *StoreService) SyncNavbarTitles() bool {
	return s.syncNavbar("sync_navbar_titles", func() {
		SyncNavbarTitles(s.data, s.datap)
	})
}

func (s *StoreService) syncNavbar(op string, fn func()) bool {
	s.mu.Lock()
	before, _ := s.data.Get(entities.NavbarLinksPath)
	before = document.Clone(before)
	fn()
	after, _ := s.data.Get(entities.NavbarLinksPath)
	if reflect.DeepEqual(before, after) {
		s.mu.Unlock()
		return false
	}
	s.revision++
	s.dirty = true
	ev := s.event(change{kind: entities.ChangeSync, op: op, file: entities.FileData, path: entities.NavbarLinksPath})
	s.mu.Unlock()

	s.metrics.ObserveMutation(op)
	s.metrics.SetDirty(true)
	s.publish(ev)
	return true
}

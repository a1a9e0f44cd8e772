package services

import (
	"encoding/json"
	"fmt"

	"github.com/snorwin/jsonpatch"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
)

// PendingChanges lists, as JSON Patch operations, how the documents differ
// from the last loaded or saved version.
func (s *StoreService) PendingChanges() ([]entities.Change, error) {
	s.mu.RLock()
	saved := s.baseline.Clone()
	current := entities.Snapshot{Data: s.data.Clone(), Datap: s.datap.Clone()}
	s.mu.RUnlock()

	changes := []entities.Change{}
	for _, file := range entities.Files {
		ops, err := diff(saved.Document(file), current.Document(file))
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", file, err)
		}
		for _, op := range ops.List() {
			changes = append(changes, entities.Change{
				File:  file,
				Op:    string(op.Operation),
				Path:  op.Path,
				Value: op.Value,
			})
		}
	}
	return changes, nil
}

func diff(saved, current document.Document) (jsonpatch.JSONPatchList, error) {
	from, err := plain(saved)
	if err != nil {
		return jsonpatch.JSONPatchList{}, err
	}
	to, err := plain(current)
	if err != nil {
		return jsonpatch.JSONPatchList{}, err
	}
	return jsonpatch.CreateJSONPatch(to, from)
}

// plain re-decodes doc without json.Number so numbers compare by value
// whichever way they entered the store.
func plain(doc document.Document) (map[string]interface{}, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

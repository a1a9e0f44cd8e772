package services

import (
	"fmt"
	"strconv"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/ports"
)

func eventList(datap document.Document) ([]any, error) {
	raw, ok := datap.Get(entities.EventsPath)
	if !ok || raw == nil {
		return []any{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", document.ErrShapeMismatch, entities.EventsPath, raw)
	}
	return list, nil
}

func eventIndex(list []any, id int64) int {
	want := strconv.FormatInt(id, 10)
	for i, item := range list {
		if m, ok := item.(map[string]any); ok && idString(m["id"]) == want {
			return i
		}
	}
	return -1
}

// nextEventID is one more than the largest numeric id in list.
func nextEventID(list []any) int64 {
	var highest int64
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, err := strconv.ParseFloat(idString(m["id"]), 64)
		if err == nil && int64(id) > highest {
			highest = int64(id)
		}
	}
	return highest + 1
}

func eventFields(req ports.EventRequest) map[string]any {
	return map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"date":        req.Date,
		"location":    req.Location,
		"image":       req.Image,
		"featured":    req.Featured,
		"showOnHome":  req.ShowOnHome,
	}
}

func decodeEvent(item any) (entities.Event, error) {
	var ev entities.Event
	if err := document.As(item, &ev); err != nil {
		return entities.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}

// Events returns the events of datap in stored order.
func (s *StoreService) Events() ([]entities.Event, error) {
	s.mu.RLock()
	list, err := eventList(s.datap)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	list = document.Clone(list).([]any)
	s.mu.RUnlock()

	return decodeEach[entities.Event](s.logger, "event", list), nil
}

// AddEvent appends a new event with the next free id.
func (s *StoreService) AddEvent(req ports.EventRequest) (entities.Event, error) {
	var created any
	err := s.apply(change{kind: entities.ChangeMutation, op: "add_event", file: entities.FileDatap, path: entities.EventsPath}, func() error {
		list, err := eventList(s.datap)
		if err != nil {
			return err
		}
		stamp := entities.FormatTimestamp(s.now())
		item := eventFields(req)
		item["id"] = nextEventID(list)
		item["createdAt"] = stamp
		item["updatedAt"] = stamp

		normalized, err := document.Normalize(item)
		if err != nil {
			return err
		}
		if err := s.datap.Push(entities.EventsPath, normalized); err != nil {
			return err
		}
		created = document.Clone(normalized)
		return nil
	})
	if err != nil {
		return entities.Event{}, err
	}
	return decodeEvent(created)
}

// UpdateEvent overwrites the editable fields of the event with id and stamps
// updatedAt. Other fields are kept.
func (s *StoreService) UpdateEvent(id int64, req ports.EventRequest) (entities.Event, error) {
	var updated any
	err := s.apply(change{kind: entities.ChangeMutation, op: "update_event", file: entities.FileDatap, path: entities.EventsPath}, func() error {
		list, err := eventList(s.datap)
		if err != nil {
			return err
		}
		idx := eventIndex(list, id)
		if idx < 0 {
			return fmt.Errorf("%w: %d", entities.ErrEventNotFound, id)
		}
		merged := document.Clone(list[idx]).(map[string]any)
		for k, v := range eventFields(req) {
			merged[k] = v
		}
		merged["updatedAt"] = entities.FormatTimestamp(s.now())

		if err := s.datap.Set(itemPath(entities.EventsPath, idx), merged); err != nil {
			return err
		}
		updated = document.Clone(merged)
		return nil
	})
	if err != nil {
		return entities.Event{}, err
	}
	return decodeEvent(updated)
}

// RemoveEvent deletes the event with id.
func (s *StoreService) RemoveEvent(id int64) error {
	return s.apply(change{kind: entities.ChangeMutation, op: "remove_event", file: entities.FileDatap, path: entities.EventsPath}, func() error {
		list, err := eventList(s.datap)
		if err != nil {
			return err
		}
		idx := eventIndex(list, id)
		if idx < 0 {
			return fmt.Errorf("%w: %d", entities.ErrEventNotFound, id)
		}
		_, err = s.datap.RemoveAt(entities.EventsPath, idx)
		return err
	})
}

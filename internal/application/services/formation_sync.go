package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
)

const formationsLinkText = "formations"

// SyncNavbarFormations rebuilds the submenu of the "Formations" navbar link
// from formations.items: the catalogue entry first, then every formation shown
// on the home page in catalogue order. It reports false, leaving data
// untouched, when the link or its subLinks array is missing.
func SyncNavbarFormations(data document.Document) bool {
	owner := formationsLink(data)
	if owner == nil {
		return false
	}
	subLinks, ok := owner["subLinks"].([]any)
	if !ok {
		return false
	}

	var catalogue any = map[string]any{
		"text": entities.CatalogueText,
		"path": entities.CataloguePath,
	}
	for _, sub := range subLinks {
		if m, ok := sub.(map[string]any); ok && m["path"] == entities.CataloguePath {
			catalogue = m
			break
		}
	}

	rebuilt := []any{catalogue}
	items, _ := data.Get(entities.FormationsPath)
	list, _ := items.([]any)
	for _, item := range list {
		f, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if visible, _ := f["showOnHome"].(bool); !visible {
			continue
		}
		path := formationPath(f)
		if path == entities.CataloguePath {
			continue
		}
		rebuilt = append(rebuilt, map[string]any{"text": f["title"], "path": path})
	}

	owner["subLinks"] = rebuilt
	return true
}

// SyncNavbarTitles copies page titles from datap onto the formations submenu.
// A sub-link whose last path segment names a datap page with a non-empty title
// takes that title as its text. It returns the number of links changed.
func SyncNavbarTitles(data, datap document.Document) int {
	owner := formationsLink(data)
	if owner == nil {
		return 0
	}
	subLinks, _ := owner["subLinks"].([]any)

	changed := 0
	for _, sub := range subLinks {
		link, ok := sub.(map[string]any)
		if !ok {
			continue
		}
		path, _ := link["path"].(string)
		key := path[strings.LastIndex(path, "/")+1:]
		if key == "" {
			continue
		}
		page, ok := datap[key].(map[string]any)
		if !ok {
			continue
		}
		title, _ := page["title"].(string)
		if title == "" || link["text"] == title {
			continue
		}
		link["text"] = title
		changed++
	}
	return changed
}

func formationsLink(data document.Document) map[string]any {
	raw, _ := data.Get(entities.NavbarLinksPath)
	links, _ := raw.([]any)
	for _, l := range links {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		text, _ := link["text"].(string)
		if strings.ToLower(strings.TrimSpace(text)) == formationsLinkText {
			return link
		}
	}
	return nil
}

func formationPath(f map[string]any) string {
	if p, ok := f["path"].(string); ok && p != "" {
		return p
	}
	return "/formations/" + idString(f["id"])
}

// idString renders a document id whichever JSON type it was stored as.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

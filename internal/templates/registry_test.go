package templates

import (
	"encoding/json"
	"errors"
	"testing"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestNewRegistry_LoadsCatalog(t *testing.T) {
	r := newTestRegistry(t)

	templates := r.ListTemplates()
	if len(templates) == 0 {
		t.Fatal("catalog loaded no templates")
	}

	for _, tmpl := range templates {
		if tmpl.ID == "" || tmpl.Name == "" {
			t.Errorf("template %+v missing id or name", tmpl)
		}
		if len(tmpl.Elements) == 0 {
			t.Errorf("template %q has no elements", tmpl.ID)
		}
		for i, el := range tmpl.Elements {
			if el.Type == "" {
				t.Errorf("template %q element %d has no type", tmpl.ID, i)
			}
			if !json.Valid(el.Content) {
				t.Errorf("template %q element %d content is not valid JSON", tmpl.ID, i)
			}
		}
	}
}

func TestGetTemplate(t *testing.T) {
	r := newTestRegistry(t)

	tmpl, err := r.GetTemplate("meeting-notes")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if tmpl.Name == "" {
		t.Error("template has no name")
	}

	_, err = r.GetTemplate("no-such-template")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestInstantiate_AssignsFreshIDs(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Instantiate("todo-list")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	second, err := r.Instantiate("todo-list")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	if len(first.Elements) == 0 {
		t.Fatal("instantiated page has no elements")
	}
	if len(first.Elements) != len(second.Elements) {
		t.Fatalf("instantiations differ in size: %d vs %d", len(first.Elements), len(second.Elements))
	}

	for i := range first.Elements {
		if first.Elements[i].ID == "" {
			t.Errorf("element %d has no id", i)
		}
		if first.Elements[i].ID == second.Elements[i].ID {
			t.Errorf("element %d shares its id across instantiations", i)
		}
	}
}

func TestInstantiate_ChecklistItemsGetFreshIDs(t *testing.T) {
	r := newTestRegistry(t)

	// todo-list carries a checklist element.
	first, err := r.Instantiate("todo-list")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	second, err := r.Instantiate("todo-list")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	firstItems := checklistItems(t, first)
	secondItems := checklistItems(t, second)
	if len(firstItems) == 0 {
		t.Fatal("todo-list has no checklist items")
	}

	for i := range firstItems {
		if firstItems[i].ID == "" {
			t.Errorf("checklist item %d has no id", i)
		}
		if firstItems[i].ID == secondItems[i].ID {
			t.Errorf("checklist item %d shares its id across instantiations", i)
		}
		if firstItems[i].Checked {
			t.Errorf("checklist item %d starts checked", i)
		}
	}
}

func TestInstantiate_Unknown(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Instantiate("no-such-template")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func checklistItems(t *testing.T, page *models.PageData) []models.ChecklistItem {
	t.Helper()

	for _, el := range page.Elements {
		if el.Type != models.ElementChecklist {
			continue
		}
		var items []models.ChecklistItem
		if err := json.Unmarshal(el.Content, &items); err != nil {
			t.Fatalf("decode checklist content: %v", err)
		}
		return items
	}
	return nil
}

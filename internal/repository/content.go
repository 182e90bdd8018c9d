package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

var ErrContentEmpty = errors.New("content repository is empty")

// ContentRepository provides the hand-authored lessons loaded from JSON.
type ContentRepository struct {
	items  []entities.ContentItem
	byType map[entities.ContentType][]entities.ContentItem
}

// NewContentRepository loads lessons from the JSON file at path.
func NewContentRepository(path string) (*ContentRepository, error) {
	items, err := loadContent(path)
	if err != nil {
		return nil, err
	}

	return newContentRepository(items)
}

func newContentRepository(items []entities.ContentItem) (*ContentRepository, error) {
	if len(items) == 0 {
		return nil, ErrContentEmpty
	}

	r := &ContentRepository{
		items:  items,
		byType: make(map[entities.ContentType][]entities.ContentItem),
	}
	for _, item := range items {
		if !item.Difficulty.Valid() {
			return nil, fmt.Errorf("content %q: unknown difficulty %q", item.Title, item.Difficulty)
		}
		if len(item.KeyFacts) == 0 || len(item.Keywords) == 0 {
			return nil, fmt.Errorf("content %q: key facts and keywords are required", item.Title)
		}
		r.byType[item.Topic] = append(r.byType[item.Topic], item)
	}

	return r, nil
}

// ByType returns all lessons of the given subject.
func (r *ContentRepository) ByType(t entities.ContentType) []entities.ContentItem {
	return r.byType[t]
}

// All returns every lesson.
func (r *ContentRepository) All() []entities.ContentItem {
	return r.items
}

func loadContent(path string) ([]entities.ContentItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Items []entities.ContentItem `json:"items"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content JSON: %w", err)
	}

	return wrapper.Items, nil
}

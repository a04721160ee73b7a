package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"taskvault/internal/apperr"
	"taskvault/internal/domain/entity"
	repo "taskvault/internal/domain/repository"
)

// TaskService owns the task store. Every operation is scoped to an owner
// identity; an empty owner means "no identity" and is denied outright.
type TaskService struct {
	Repo         repo.TaskRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTasksIndex string
}

func NewTaskService(r repo.TaskRepository, logger *logrus.Logger, es *elasticsearch.Client, esTasksIndex string) *TaskService {
	return &TaskService{Repo: r, Logger: logger, ES: es, ESTasksIndex: esTasksIndex}
}

// belongsTo is the single ownership predicate applied before every read and
// mutation. A failed check surfaces as ErrNotFound, never as a distinct
// "forbidden", so foreign tasks are indistinguishable from missing ones.
func belongsTo(t *entity.Task, ownerID string) bool {
	return ownerID != "" && t.OwnerID == ownerID
}

// CreateTaskInput carries a new task; TaskPatch is a partial update where
// nil means "leave unchanged".
type CreateTaskInput struct {
	Title       string
	Description string
}

type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func validTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		return fmt.Errorf("%w: title must be 3-100 characters", apperr.ErrValidation)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]entity.Task, error) {
	if ownerID == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	if ownerID == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !belongsTo(t, ownerID) {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}

// Create checks (owner, title) uniqueness before writing; the composite
// unique index settles concurrent creates with the same conflict kind.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput, ownerID string) (*entity.Task, error) {
	if ownerID == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	title := strings.TrimSpace(in.Title)
	if err := validTitle(title); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByOwnerAndTitle(ctx, ownerID, title); err == nil {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"owner_id": ownerID, "title": title}).Warn("duplicate task title")
		}
		return nil, apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	t := &entity.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("task_id", t.ID).Info("task created")
	}
	s.indexTask(ctx, t)
	return t, nil
}

// Update applies a partial patch. Ownership and title uniqueness are both
// verified before the write is issued.
func (s *TaskService) Update(ctx context.Context, id string, patch TaskPatch, ownerID string) (*entity.Task, error) {
	t, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validTitle(title); err != nil {
			return nil, err
		}
		if title != t.Title {
			if other, err := s.Repo.GetByOwnerAndTitle(ctx, ownerID, title); err == nil && other.ID != t.ID {
				return nil, apperr.ErrConflict
			} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.indexTask(ctx, t)
	return t, nil
}

// Delete removes the task and returns the deleted record. The ownership
// check runs before the delete so a foreign task is left untouched.
func (s *TaskService) Delete(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	t, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("task_id", t.ID).Info("task deleted")
	}
	s.dropTaskDoc(ctx, t.ID)
	return t, nil
}

// Search runs a multi_match over title and description, filtered to the
// owner's documents. With no ES configured it returns an empty result.
func (s *TaskService) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if ownerID == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	if s.ES == nil || s.ESTasksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"owner_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTasksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexTask mirrors the task into ES. Indexing is best effort: a failure is
// logged and never fails the write that triggered it.
func (s *TaskService) indexTask(ctx context.Context, t *entity.Task) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"owner_id":    t.OwnerID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTasksIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("task_id", t.ID).Warn("es index response error")
	}
}

func (s *TaskService) dropTaskDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTasksIndex, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

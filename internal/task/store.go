package task

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskdeck/internal/kv"
)

// TasksKey is the kv key holding the serialized task list.
const TasksKey = "todoTasks"

// Store owns the ordered task list and is its only writer. The raw
// order is newest-first (Add prepends); filtering and sorting always
// work on a derived copy. Every mutation is applied in memory first and
// then saved; a failed save is logged and returned as a PersistError
// but never rolls the mutation back.
type Store struct {
	kv     kv.Store
	logger *log.Logger
	tasks  []Task

	// Now is the store's clock. Tests override it to pin timestamps.
	Now func() time.Time
}

func NewStore(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		kv:     store,
		logger: logger,
		Now:    time.Now,
	}
}

// Load reads the persisted list. A missing key, unreadable store, or
// invalid payload all leave the store empty; the failure is logged and
// not surfaced, so a corrupt database never blocks startup.
func (s *Store) Load() {
	s.tasks = nil
	raw, ok, err := s.kv.Get(TasksKey)
	if err != nil {
		s.logger.Error("load tasks", "err", err)
		return
	}
	if !ok {
		return
	}
	tasks, err := Unmarshal(raw)
	if err != nil {
		s.logger.Error("discarding stored tasks", "err", err)
		return
	}
	s.tasks = tasks
}

// Tasks returns a copy of the list in raw (newest-first) order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

// Get looks a task up by id.
func (s *Store) Get(id string) (Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add validates, constructs, and prepends a task. It returns
// ErrEmptyTitle without mutating anything when the trimmed title is
// empty. A PersistError still carries the created task.
func (s *Store) Add(in Input) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	now := s.Now()
	t := Task{
		ID:          newID(now),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Due:         in.Due,
		Priority:    normalizePriority(in.Priority),
		Category:    normalizeCategory(in.Category),
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append([]Task{t}, s.tasks...)
	return t, s.save("add")
}

// Edit replaces the mutable fields of the task with the given id,
// preserving ID, Completed, and CreatedAt. It returns ErrNotFound when
// the id is not in the list.
func (s *Store) Edit(id string, in Input) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		t.Title = title
		t.Description = strings.TrimSpace(in.Description)
		t.Due = in.Due
		t.Priority = normalizePriority(in.Priority)
		t.Category = normalizeCategory(in.Category)
		t.UpdatedAt = s.Now()
		return *t, s.save("edit")
	}
	return Task{}, ErrNotFound
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.save("delete")
		}
	}
	return ErrNotFound
}

// Toggle flips the completion flag and returns the updated task.
func (s *Store) Toggle(id string) (Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		t.Completed = !t.Completed
		t.UpdatedAt = s.Now()
		return *t, s.save("toggle")
	}
	return Task{}, ErrNotFound
}

// CompletedCount reports how many tasks are completed, so the caller
// can ask for confirmation (or skip the whole operation) before
// ClearCompleted.
func (s *Store) CompletedCount() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// ClearCompleted removes every completed task and returns the count
// removed. With nothing to remove it neither mutates nor saves.
func (s *Store) ClearCompleted() (int, error) {
	kept := s.tasks[:0:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.save("clear completed")
}

func (s *Store) save(op string) error {
	raw, err := Marshal(s.tasks)
	if err == nil {
		err = s.kv.Set(TasksKey, raw)
	}
	if err != nil {
		s.logger.Error("save tasks", "op", op, "err", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

func normalizePriority(p Priority) Priority {
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "other"
	}
	return c
}

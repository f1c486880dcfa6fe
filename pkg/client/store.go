package client

import (
	"context"
	"sync"
)

// TaskStore mirrors the authenticated user's task collection in memory.
// It is meant to live exactly as long as one session: create it after
// login, call Clear on logout.
//
// Every mutation is a sequential request-then-reconcile step: the busy
// flag is raised, the server is called, and only a successful response
// touches the local collection. A failed call leaves the collection
// exactly as it was. There are no optimistic updates and no retries.
type TaskStore struct {
	client *Client

	mu    sync.Mutex
	tasks []Task
	busy  bool
}

func NewTaskStore(client *Client) *TaskStore {
	return &TaskStore{client: client}
}

// Tasks returns a copy of the local collection.
func (s *TaskStore) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Busy reports whether a request is in flight. It is advisory: callers
// use it to disable form submission, it does not serialize calls.
func (s *TaskStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Refresh replaces the whole collection with the server's task list.
func (s *TaskStore) Refresh(ctx context.Context) error {
	s.setBusy(true)
	defer s.setBusy(false)

	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Create submits a new task and prepends the server's copy, keeping
// the newest-first ordering of the server list.
func (s *TaskStore) Create(ctx context.Context, title string, description *string) error {
	s.setBusy(true)
	defer s.setBusy(false)

	task, err := s.client.CreateTask(ctx, title, description)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = append([]Task{*task}, s.tasks...)
	s.mu.Unlock()
	return nil
}

// Update submits a partial update and replaces the matching local
// entry with the server's copy.
func (s *TaskStore) Update(ctx context.Context, id string, update TaskUpdate) error {
	s.setBusy(true)
	defer s.setBusy(false)

	task, err := s.client.UpdateTask(ctx, id, update)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = *task
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the task on the server, then locally.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.setBusy(true)
	defer s.setBusy(false)

	err := s.client.DeleteTask(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	tasks := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Clear empties the store. Call it when the session ends.
func (s *TaskStore) Clear() {
	s.mu.Lock()
	s.tasks = nil
	s.busy = false
	s.mu.Unlock()
}

func (s *TaskStore) setBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

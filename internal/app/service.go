// Package app orchestrates task commands: parsing, scoring, persistence,
// and the one-shot per-owner undo slot.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"taskbot/internal/scoring"
	"taskbot/internal/shorthand"
	"taskbot/internal/store"
	"taskbot/internal/undo"
)

// MaxTaskNumber caps the per-owner task number range. Numbers are recycled
// from [1, MaxTaskNumber] as tasks complete or get deleted.
const MaxTaskNumber = 99

// fieldColumns maps the user-facing edit field names onto stored columns.
var fieldColumns = map[string]string{
	"title":    "title",
	"tag":      "tag",
	"project":  "project",
	"priority": "priority_code",
	"date":     "due_code",
}

type taskStore interface {
	ListActive(ctx context.Context, ownerID int64, tag, project string) ([]store.Task, error)
	ActiveNumbers(ctx context.Context, ownerID int64) ([]int, error)
	GetActiveByNumber(ctx context.Context, ownerID int64, number int) (store.Task, error)
	Insert(ctx context.Context, task store.Task) (int64, error)
	InsertWithID(ctx context.Context, task store.Task) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	SetField(ctx context.Context, id int64, column, value string) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	tasks taskStore
	undos undo.Store
	clock scoring.Clock

	mu         sync.Mutex
	ownerLocks map[int64]*sync.Mutex
}

func New(tasks taskStore, undos undo.Store, clock scoring.Clock) *Service {
	return &Service{
		tasks:      tasks,
		undos:      undos,
		clock:      clock,
		ownerLocks: make(map[int64]*sync.Mutex),
	}
}

// ownerLock returns the mutex serializing number allocation for one owner.
// Webhook deliveries run on concurrent goroutines, so the read-then-write
// in Create must be atomic per owner or two creates can claim one number.
func (s *Service) ownerLock(ownerID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.ownerLocks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.ownerLocks[ownerID] = lock
	}
	return lock
}

// Create parses a shorthand line, assigns the smallest free task number,
// and persists the task. Returns the confirmation reply.
func (s *Service) Create(ctx context.Context, ownerID int64, text string) (string, error) {
	fields, err := shorthand.Parse(text)
	if errors.Is(err, shorthand.ErrEmptyTitle) {
		return "", validationError("❌ La tarea necesita un título.")
	}
	if err != nil {
		return "", fmt.Errorf("parse task: %w", err)
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	numbers, err := s.tasks.ActiveNumbers(ctx, ownerID)
	if err != nil {
		return "", err
	}
	number := allocateNumber(ownerID, numbers)

	task := store.Task{
		OwnerID:      ownerID,
		Number:       number,
		Title:        fields.Title,
		Tag:          fields.Tag,
		Project:      fields.Project,
		PriorityCode: fields.Priority,
		DueCode:      fields.Due,
	}
	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return "", err
	}

	if err := s.undos.Put(ctx, ownerID, undo.Action{Kind: undo.KindCreate, TaskID: id}); err != nil {
		return "", err
	}
	return renderCreated(number, fields), nil
}

// allocateNumber returns the smallest unused number in [1, MaxTaskNumber].
// When the range is exhausted it falls back to reusing MaxTaskNumber, which
// risks a numbering collision; the condition is logged so it is visible.
func allocateNumber(ownerID int64, active []int) int {
	used := make(map[int]bool, len(active))
	for _, n := range active {
		used[n] = true
	}
	for i := 1; i <= MaxTaskNumber; i++ {
		if !used[i] {
			return i
		}
	}
	log.Printf("owner %d exhausted task numbers, reusing %d", ownerID, MaxTaskNumber)
	return MaxTaskNumber
}

// Show lists active tasks ordered by descending urgency. The filter text is
// either "@TAG", "p PROJECT", or a bare project substring.
func (s *Service) Show(ctx context.Context, ownerID int64, filter string) (string, error) {
	var tag, project string
	filter = strings.TrimSpace(filter)
	switch {
	case strings.HasPrefix(filter, "@"):
		tag = strings.ToUpper(filter[1:])
	case strings.HasPrefix(strings.ToLower(filter), "p "):
		project = strings.TrimSpace(filter[2:])
	default:
		project = filter
	}

	tasks, err := s.tasks.ListActive(ctx, ownerID, tag, project)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return renderEmpty(tag, project), nil
	}

	today := s.clock.Today()
	scores := make(map[int64]int, len(tasks))
	for _, t := range tasks {
		scores[t.ID] = scoring.Score(t.Tag, t.PriorityCode, t.DueCode, today)
	}
	// Stable: equal scores keep the store's id-ascending order.
	sort.SliceStable(tasks, func(i, j int) bool {
		return scores[tasks[i].ID] > scores[tasks[j].ID]
	})

	return renderList(tasks, tag, project), nil
}

// Complete marks one task (by number) or every active task ("all") as done.
func (s *Service) Complete(ctx context.Context, ownerID int64, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", validationError("Uso: `/done ID`")
	}

	if strings.EqualFold(arg, "all") {
		tasks, err := s.tasks.ListActive(ctx, ownerID, "", "")
		if err != nil {
			return "", err
		}
		if len(tasks) == 0 {
			return "📭 No hay tareas pendientes.", nil
		}
		ids := make([]int64, 0, len(tasks))
		for _, t := range tasks {
			if err := s.tasks.SetCompleted(ctx, t.ID, true); err != nil {
				return "", err
			}
			ids = append(ids, t.ID)
		}
		if err := s.undos.Put(ctx, ownerID, undo.Action{Kind: undo.KindDoneAll, TaskIDs: ids}); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ %d tareas completadas.", len(ids)), nil
	}

	task, err := s.resolveNumber(ctx, ownerID, arg)
	if err != nil {
		return "", err
	}
	if err := s.tasks.SetCompleted(ctx, task.ID, true); err != nil {
		return "", err
	}
	if err := s.undos.Put(ctx, ownerID, undo.Action{Kind: undo.KindDone, TaskID: task.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ *%s* completada.", task.Title), nil
}

// Delete removes a task, capturing the full record so undo can restore it.
func (s *Service) Delete(ctx context.Context, ownerID int64, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", validationError("Uso: `/del ID`")
	}

	task, err := s.resolveNumber(ctx, ownerID, arg)
	if err != nil {
		return "", err
	}
	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return "", err
	}
	snapshot := task
	if err := s.undos.Put(ctx, ownerID, undo.Action{Kind: undo.KindDelete, TaskID: task.ID, Snapshot: &snapshot}); err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑 *%s* eliminada.", task.Title), nil
}

// Edit updates one of the five editable fields on a task. Tags are
// upper-cased, everything else is stored verbatim.
func (s *Service) Edit(ctx context.Context, ownerID int64, numberArg, field, value string) (string, error) {
	field = strings.ToLower(field)
	column, ok := fieldColumns[field]
	if !ok {
		return "", validationError(fmt.Sprintf("❌ Campo '%s' no válido. Usa: title, tag, project, priority, date", field))
	}

	task, err := s.resolveNumber(ctx, ownerID, numberArg)
	if err != nil {
		return "", err
	}

	stored := value
	if field == "tag" {
		stored = strings.ToUpper(value)
	}
	if err := s.tasks.SetField(ctx, task.ID, column, stored); err != nil {
		return "", err
	}
	if err := s.undos.Put(ctx, ownerID, undo.Action{
		Kind:     undo.KindEdit,
		TaskID:   task.ID,
		Field:    column,
		OldValue: columnValue(task, column),
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("✏️ Tarea #%d actualizada: %s → %s", task.Number, field, value), nil
}

// Undo reverses the owner's last recorded mutation. The slot is consumed
// even when there is nothing to reverse afterwards.
func (s *Service) Undo(ctx context.Context, ownerID int64) (string, error) {
	action, err := s.undos.Take(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if action == nil {
		return "❌ Nada que deshacer.", nil
	}

	switch action.Kind {
	case undo.KindCreate:
		if err := s.tasks.Delete(ctx, action.TaskID); err != nil {
			return "", err
		}
		return "↩️ Creación deshecha.", nil
	case undo.KindDone:
		if err := s.tasks.SetCompleted(ctx, action.TaskID, false); err != nil {
			return "", err
		}
		return "↩️ Tarea restaurada.", nil
	case undo.KindDoneAll:
		for _, id := range action.TaskIDs {
			if err := s.tasks.SetCompleted(ctx, id, false); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("↩️ %d tareas restauradas.", len(action.TaskIDs)), nil
	case undo.KindDelete:
		if action.Snapshot == nil {
			return "", fmt.Errorf("undo delete: missing snapshot")
		}
		if err := s.tasks.InsertWithID(ctx, *action.Snapshot); err != nil {
			return "", err
		}
		return fmt.Sprintf("↩️ *%s* restaurada.", action.Snapshot.Title), nil
	case undo.KindEdit:
		if err := s.tasks.SetField(ctx, action.TaskID, action.Field, action.OldValue); err != nil {
			return "", err
		}
		return "↩️ Edición revertida.", nil
	default:
		return "", fmt.Errorf("undo: unknown action kind %q", action.Kind)
	}
}

// resolveNumber turns a user-typed task number into the matching active
// task, rejecting non-numeric input and unknown numbers.
func (s *Service) resolveNumber(ctx context.Context, ownerID int64, arg string) (store.Task, error) {
	number, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return store.Task{}, validationError("ID debe ser un número.")
	}
	task, err := s.tasks.GetActiveByNumber(ctx, ownerID, number)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Task{}, notFoundError(fmt.Sprintf("❌ Tarea #%d no encontrada.", number))
	}
	if err != nil {
		return store.Task{}, err
	}
	return task, nil
}

func columnValue(task store.Task, column string) string {
	switch column {
	case "title":
		return task.Title
	case "tag":
		return task.Tag
	case "project":
		return task.Project
	case "priority_code":
		return task.PriorityCode
	case "due_code":
		return task.DueCode
	}
	return ""
}

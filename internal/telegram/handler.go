package telegram

import (
	"context"
	"errors"
	"log"
	"strings"

	"taskbot/internal/app"
)

// TaskService is the slice of the task list service the handler needs.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, text string) (string, error)
	Show(ctx context.Context, ownerID int64, filter string) (string, error)
	Complete(ctx context.Context, ownerID int64, arg string) (string, error)
	Delete(ctx context.Context, ownerID int64, arg string) (string, error)
	Edit(ctx context.Context, ownerID int64, numberArg, field, value string) (string, error)
	Undo(ctx context.Context, ownerID int64) (string, error)
}

// MessageSender sends a reply into a chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Handler struct {
	service TaskService
	sender  MessageSender
}

func NewHandler(service TaskService, sender MessageSender) *Handler {
	return &Handler{service: service, sender: sender}
}

// Commands is the command list registered with the Bot API at startup.
func Commands() []BotCommand {
	return []BotCommand{
		{Command: "show", Description: "Ver tareas (filtros: @TAG, p PROYECTO)"},
		{Command: "done", Description: "Completar tarea por ID"},
		{Command: "del", Description: "Eliminar tarea por ID"},
		{Command: "edit", Description: "Editar tarea: /edit ID campo valor"},
		{Command: "undo", Description: "Deshacer última acción"},
		{Command: "help", Description: "Ayuda completa"},
	}
}

// HandleUpdate dispatches one inbound update. Commands map onto service
// operations; any other text creates a task.
func (h *Handler) HandleUpdate(ctx context.Context, update Update) {
	message := update.Message
	if message == nil || message.From == nil {
		return
	}
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}
	ownerID := message.From.ID
	chatID := message.Chat.ID

	var reply string
	var err error

	if strings.HasPrefix(text, "/") {
		command, args := splitCommand(text)
		switch command {
		case "start":
			reply = startText
		case "help":
			reply = helpText
		case "show":
			reply, err = h.service.Show(ctx, ownerID, args)
		case "done":
			reply, err = h.service.Complete(ctx, ownerID, args)
		case "del":
			reply, err = h.service.Delete(ctx, ownerID, args)
		case "edit":
			parts := strings.Fields(args)
			if len(parts) < 3 {
				reply = "Uso: `/edit ID campo valor`\nCampos: title, tag, project, priority, date"
			} else {
				reply, err = h.service.Edit(ctx, ownerID, parts[0], parts[1], strings.Join(parts[2:], " "))
			}
		case "undo":
			reply, err = h.service.Undo(ctx, ownerID)
		default:
			return
		}
	} else {
		reply, err = h.service.Create(ctx, ownerID, text)
	}

	if err != nil {
		var domainErr *app.DomainError
		if errors.As(err, &domainErr) {
			reply = domainErr.Message
		} else {
			log.Printf("command failed for owner %d: %v", ownerID, err)
			reply = "⚠️ Algo salió mal. Intenta de nuevo."
		}
	}
	if reply == "" {
		return
	}
	if err := h.sender.SendMessage(ctx, chatID, reply); err != nil {
		log.Printf("send reply to chat %d: %v", chatID, err)
	}
}

// splitCommand separates "/edit@MyBot 3 tag CS" into ("edit", "3 tag CS").
func splitCommand(text string) (string, string) {
	command := text[1:]
	args := ""
	if i := strings.IndexByte(command, ' '); i >= 0 {
		command, args = command[:i], strings.TrimSpace(command[i+1:])
	}
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}
	return strings.ToLower(command), args
}

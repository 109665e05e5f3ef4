package listing

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"adminconsole/internal/logger"
)

// Confirmation is an action waiting for the operator to confirm it.
type Confirmation struct {
	Title   string
	Message string
	Action  func(ctx context.Context) error
}

type ConfirmView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// RequestConfirm fills the confirmation slot, replacing any pending action.
func (l *List[T]) RequestConfirm(title, message string, action func(ctx context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.confirm = &Confirmation{Title: title, Message: message, Action: action}
}

func (l *List[T]) PendingConfirm() (ConfirmView, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.confirm == nil {
		return ConfirmView{}, false
	}
	return ConfirmView{Title: l.confirm.Title, Message: l.confirm.Message}, true
}

func (l *List[T]) CancelConfirm() {
	l.mu.Lock()
	l.confirm = nil
	l.mu.Unlock()
}

// ExecuteConfirm runs the pending action under the loader. It refetches on
// success, raises a toast on failure and always clears the slot.
func (l *List[T]) ExecuteConfirm(ctx context.Context) error {
	l.mu.Lock()
	pending := l.confirm
	l.confirm = nil
	l.mu.Unlock()

	if pending == nil {
		return ErrNoConfirm
	}

	l.cfg.Loader.Show()
	err := pending.Action(ctx)
	l.cfg.Loader.Hide()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Zlog.Error("confirmed action failed",
				zap.String("list", l.cfg.Name),
				zap.String("action", pending.Title),
				zap.Error(err))
			l.cfg.Notifier.Error(err.Error())
		}
		return err
	}

	_ = l.Refetch(ctx)
	return nil
}

package console

import (
	"context"

	"go.uber.org/zap"

	"adminconsole/internal/logger"
	"adminconsole/internal/service"
)

// partnerNotifier tells a partner about a decision on their submission.
// Delivery failures are logged and never surface to the caller.
type partnerNotifier struct {
	notifications service.NotificationService
}

func (n partnerNotifier) notify(ctx context.Context, partnerID int64, title, content string) {
	if partnerID == 0 || n.notifications == nil {
		return
	}

	err := n.notifications.SendToUser(ctx, service.SendNotificationRequest{
		UserID:  partnerID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		logger.Zlog.Warn("partner notification failed",
			zap.Int64("partner_id", partnerID),
			zap.String("title", title),
			zap.Error(err))
	}
}

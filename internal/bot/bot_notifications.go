package bot

import (
	"dominaria/internal/back"
	"fmt"
	"io"
	"log"
)

// serveNotifications forwards backend notifications to Discord until done is
// closed, it must run in a single goroutine to keep announcements in order.
func (bot *Bot) serveNotifications(done <-chan struct{}) {
	notifs := bot.back.GetNotificationsChan()

	for {
		select {
		case <-done:
			return
		case n := <-notifs:
			if err := bot.sendNotification(n); err != nil {
				log.Printf("error: could not send notification: %s", err)
			}
		}
	}
}

func (bot *Bot) sendNotification(n back.Notification) error {
	log.Printf("debug: sending notification %s", n.String())

	w, err := bot.notificationWriter(n)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, &n); err != nil {
		return err
	}

	return w.Flush()
}

func (bot *Bot) notificationWriter(n back.Notification) (*channelWriter, error) {
	switch n.RecipientType {
	case back.NotificationRecipientTypeAnnounceChannel:
		if bot.config.AnnounceDiscordChannelID == "" {
			return nil, fmt.Errorf("no announce channel configured")
		}

		return newChannelWriter(bot.dg, bot.config.AnnounceDiscordChannelID), nil
	case back.NotificationRecipientTypeDiscordUser:
		return newUserChannelWriter(bot.dg, n.Recipient)
	default:
		return nil, fmt.Errorf("unknown recipient type: %d", n.RecipientType)
	}
}

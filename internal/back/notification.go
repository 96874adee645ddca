package back

import (
	"bytes"
	"fmt"
	"log"
)

type NotificationRecipientType int

const (
	// NotificationRecipientTypeAnnounceChannel targets whatever channel the
	// frontend is configured to announce results in.
	NotificationRecipientTypeAnnounceChannel NotificationRecipientType = 0
	NotificationRecipientTypeDiscordUser     NotificationRecipientType = 1
)

type NotificationType int

const (
	NotificationTypeGameRecorded NotificationType = iota
	NotificationTypePlayerRegistered
)

type Notification struct {
	RecipientType NotificationRecipientType
	Recipient     string
	Type          NotificationType

	body bytes.Buffer
}

func (n *Notification) Printf(str string, args ...interface{}) (int, error) {
	return fmt.Fprintf(&n.body, str, args...)
}

func (n *Notification) Print(args ...interface{}) (int, error) {
	return fmt.Fprint(&n.body, args...)
}

func (n *Notification) Read(p []byte) (int, error) {
	return n.body.Read(p)
}

// For debugging purposes only.
func (n *Notification) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(
		&buf,
		"Notification{Type: %d, RecipientType: %d, Recipient: %s, body: %s}",
		n.Type, n.RecipientType, n.Recipient, n.body.String(),
	)

	return buf.String()
}

// sendNotification queues a notification for the frontends, it never blocks:
// if no frontend is listening the notification is dropped with a log.
func (b *Back) sendNotification(n Notification) {
	select {
	case b.notifications <- n:
	default:
		log.Printf("warning: dropped notification: %s", n.String())
	}
}

func (b *Back) sendGameRecordedNotification(game Game, summary GameSummary) {
	n := Notification{
		RecipientType: NotificationRecipientTypeAnnounceChannel,
		Type:          NotificationTypeGameRecorded,
	}

	n.Printf(
		"**%s** won a game of %d on %s playing *%s* (%+.2f)\n",
		summary.Winner.PlayerName,
		1+len(summary.Losers),
		game.PlayedAt.Time().Format("2006-01-02"),
		summary.Winner.CommanderName,
		summary.Winner.RatingDelta,
	)
	for _, v := range summary.Losers {
		n.Printf("%s playing *%s* (%+.2f)\n", v.PlayerName, v.CommanderName, v.RatingDelta)
	}

	b.sendNotification(n)
}

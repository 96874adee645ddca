package bot

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
)

// channelWriter buffers writes and sends them as a single Discord
// message on Flush, Discord has no concept of a streamed message.
type channelWriter struct {
	dg        *discordgo.Session
	channelID string
	buf       bytes.Buffer
}

func newUserChannelWriter(dg *discordgo.Session, userID string) (*channelWriter, error) {
	channel, err := dg.UserChannelCreate(userID)
	if err != nil {
		return nil, err
	}

	return &channelWriter{
		dg:        dg,
		channelID: channel.ID,
	}, nil
}

func newChannelWriter(dg *discordgo.Session, channelID string) *channelWriter {
	return &channelWriter{
		dg:        dg,
		channelID: channelID,
	}
}

func (w *channelWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *channelWriter) Reset() {
	w.buf.Reset()
}

// Flush sends the accumulated buffer, chunked to fit under the Discord
// message size limit. Chunks are split on line boundaries when possible.
func (w *channelWriter) Flush() error {
	defer w.buf.Reset()

	for _, chunk := range chunkMessage(w.buf.String(), 2000) {
		if chunk == "" {
			continue
		}

		if _, err := w.dg.ChannelMessageSend(w.channelID, chunk); err != nil {
			return err
		}
	}

	return nil
}

func chunkMessage(str string, size int) []string {
	if len(str) <= size {
		return []string{str}
	}

	var chunks []string
	for len(str) > size {
		cut := size
		if i := bytes.LastIndexByte([]byte(str[:size]), '\n'); i > 0 {
			cut = i + 1
		}

		chunks = append(chunks, str[:cut])
		str = str[cut:]
	}

	return append(chunks, str)
}

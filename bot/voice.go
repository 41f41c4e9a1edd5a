package bot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"athanbot/models"
)

// AnnounceVoice joins the guild's voice channel and streams the adhan. The
// returned flag only reports whether playback started, the stream itself runs
// in the background and disconnects when done.
func (n *Notifier) AnnounceVoice(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer) bool {
	if cfg.VoiceChannelID == nil {
		return false
	}

	guildID := strconv.FormatInt(cfg.GuildID, 10)
	channelID := strconv.FormatInt(*cfg.VoiceChannelID, 10)
	return n.playAdhan(ctx, guildID, channelID)
}

// playAdhan streams the adhan into the given voice channel. IDs are Discord
// snowflake strings as the session APIs expect.
func (n *Notifier) playAdhan(ctx context.Context, guildID, channelID string) bool {
	frames, err := loadDCA(n.adhanPath)
	if err != nil {
		log.WithFields(log.Fields{
			"path":  n.adhanPath,
			"error": err,
		}).Error("Failed to load adhan audio")
		return false
	}

	vc, err := n.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		log.WithFields(log.Fields{
			"guild":   guildID,
			"channel": channelID,
			"error":   err,
		}).Error("Failed to join voice channel")
		return false
	}

	go func() {
		defer func() {
			if err := vc.Disconnect(); err != nil {
				log.Errorf("Failed to leave voice channel: %v", err)
			}
		}()

		// Give the connection a moment to settle before sending audio
		time.Sleep(250 * time.Millisecond)

		if err := vc.Speaking(true); err != nil {
			log.Errorf("Failed to set speaking state: %v", err)
			return
		}
		defer vc.Speaking(false)

		for _, frame := range frames {
			select {
			case <-ctx.Done():
				return
			case vc.OpusSend <- frame:
			}
		}

		log.WithFields(log.Fields{
			"guild":   guildID,
			"channel": channelID,
		}).Info("Adhan playback finished")
	}()

	return true
}

// loadDCA reads a .dca file into opus frames: each frame is a little endian
// int16 length followed by that many bytes of opus data.
func loadDCA(path string) ([][]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var frames [][]byte
	for {
		var length int16
		err := binary.Read(file, binary.LittleEndian, &length)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, fmt.Errorf("corrupt dca frame length %d", length)
		}

		frame := make([]byte, length)
		if _, err := io.ReadFull(file, frame); err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
}

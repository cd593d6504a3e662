package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DevSender writes emails to disk instead of delivering them, for
// local development without Postmark credentials.
type DevSender struct {
	dir string
}

// NewDevSender creates a file-based mailer. The directory is created
// on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	base := fmt.Sprintf("%s_%s", time.Now().Format("2006_01_02_150405"), msg.Tag)
	if msg.Tag == "" {
		base = time.Now().Format("2006_01_02_150405")
	}

	meta, err := json.MarshalIndent(map[string]string{
		"to":      msg.To,
		"subject": msg.Subject,
		"tag":     msg.Tag,
	}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.BodyHTML), 0o644); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

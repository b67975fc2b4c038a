package mailbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"go.uber.org/zap"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
)

// Result is what one mailbox sweep produced.
type Result struct {
	Messages int // alert messages that yielded records
	Records  []domain.RawRecord
}

// RunOnce scans UNSEEN messages in the configured folder, keeps those
// whose subject matches search_subject_any, parses their plain-text
// alert bodies into person records, and marks every inspected message
// \Seen so the next sweep starts clean.
func RunOnce(ctx context.Context, cfg config.Config, password string, log *zap.Logger) (Result, error) {
	const maxEmails = 2000

	var res Result
	mb := cfg.Sources.Mailbox
	if !mb.Enabled {
		return res, nil
	}
	if mb.IMAPHost == "" || mb.Username == "" {
		return res, errors.New("mailbox enabled but missing imap_host/username")
	}
	if password == "" {
		return res, errors.New("missing mailbox password")
	}
	if log == nil {
		log = zap.NewNop()
	}

	addr := mb.IMAPHost
	if mb.IMAPPort != 0 && !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, mb.IMAPPort)
	} else if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	folder := mb.Mailbox
	if folder == "" {
		folder = "INBOX"
	}

	host := mb.IMAPHost
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	c, err := DialAndLogin(ctx, addr, mb.Username, password, &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: host,
	})
	if err != nil {
		return res, err
	}
	defer LogoutAndClose(c, log)

	if _, err := c.Select(folder, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return res, fmt.Errorf("imap select %q: %w", folder, err)
	}

	msgs, err := FetchUnseen(ctx, c, maxEmails)
	if err != nil {
		return res, err
	}
	if len(msgs) == 0 {
		return res, nil
	}

	processed := make([]imap.UID, 0, len(msgs))

	for _, m := range msgs {
		_, bodyText, _, subj := parseRFC822(m.RawMessage, m.Subject)
		subj = decodeRFC2047(subj)

		// Require subject match when search_subject_any is set.
		if len(mb.SearchSubjectAny) > 0 && !containsAnyCI(subj, mb.SearchSubjectAny) {
			processed = append(processed, m.UID)
			continue
		}

		records := ParseAlertBody(bodyText)
		if len(records) > 0 {
			res.Messages++
			res.Records = append(res.Records, records...)
			log.Info("mailbox alert parsed",
				zap.String("subject", subj),
				zap.Int("records", len(records)))
		}
		processed = append(processed, m.UID)
	}

	if len(processed) > 0 {
		if err := MarkSeen(c, processed); err != nil {
			return res, fmt.Errorf("mark seen: %w", err)
		}
	}

	return res, nil
}

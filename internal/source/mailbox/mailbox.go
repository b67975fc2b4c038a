package mailbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"
)

// Message is a minimal representation of one alert email.
type Message struct {
	UID     imap.UID
	From    string
	To      string
	Subject string
	Date    time.Time

	// RawMessage is the full RFC822 message bytes (headers + body).
	// Fetched using BODY.PEEK[] so it won't mark as \Seen.
	RawMessage []byte
}

// DialAndLogin connects over TLS and logs in.
func DialAndLogin(ctx context.Context, addr, username, password string, tlsCfg *tls.Config) (*imapclient.Client, error) {
	if addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if username == "" || password == "" {
		return nil, errors.New("imap username/password is required")
	}
	if tlsCfg == nil {
		tlsCfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: tlsCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	// Best-effort close on context cancel.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(username, password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}

	return c, nil
}

// FetchUnseen pulls up to max unseen messages (by UID), newest first,
// including Envelope + full raw RFC822 bytes. Uses BODY.PEEK[] so it
// will NOT set \Seen.
func FetchUnseen(ctx context.Context, c *imapclient.Client, max int) ([]Message, error) {
	if c == nil {
		return nil, errors.New("imap client is nil")
	}
	if max <= 0 {
		max = 50
	}

	// Alerts older than this are stale anyway.
	cutoff := time.Now().AddDate(0, -3, 0)

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   cutoff,
	}

	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []Message{}, nil
	}

	// Newest first.
	if len(uids) > 1 {
		for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
			uids[i], uids[j] = uids[j], uids[i]
		}
	}
	if len(uids) > max {
		uids = uids[:max]
	}

	uidSet := imap.UIDSetNum(uids...)

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}

	fetchOptions := &imap.FetchOptions{
		UID:          true,
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodyAll},
	}

	fetchCmd := c.Fetch(uidSet, fetchOptions)
	defer func() { _ = fetchCmd.Close() }()

	out := make([]Message, 0, len(uids))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}

		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		var m Message
		m.UID = buf.UID

		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
			m.From = joinAddrs(buf.Envelope.From)
			m.To = joinAddrs(buf.Envelope.To)
		}

		if b := buf.FindBodySection(bodyAll); b != nil {
			m.RawMessage = append([]byte(nil), b...)
		}

		if (m.Subject == "" || m.From == "" || m.To == "" || m.Date.IsZero()) && len(m.RawMessage) > 0 {
			subj, from, to, date := parseHeadersFallback(m.RawMessage)
			if m.Subject == "" {
				m.Subject = subj
			}
			if m.From == "" {
				m.From = from
			}
			if m.To == "" {
				m.To = to
			}
			if m.Date.IsZero() && !date.IsZero() {
				m.Date = date
			}
		}

		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}

	return out, nil
}

// MarkSeen sets the \Seen flag for a UID set.
// NOTE: In go-imap v2, Store takes (numSet, storeFlags, options) and
// returns a command; Close() yields the final status.
func MarkSeen(c *imapclient.Client, uids []imap.UID) error {
	if c == nil {
		return errors.New("imap client is nil")
	}
	if len(uids) == 0 {
		return nil
	}

	set := imap.UIDSetNum(uids...)

	storeFlags := &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}

	cmd := c.Store(set, storeFlags, nil)
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap store add seen: %w", err)
	}
	return nil
}

// LogoutAndClose logs out then closes the connection.
func LogoutAndClose(c *imapclient.Client, log *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Logout().Wait(); err != nil && log != nil {
		log.Warn("imap logout", zap.Error(err))
	}
	_ = c.Close()
}

func joinAddrs(addrs []imap.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(addrs))
	for i := range addrs {
		a := &addrs[i]
		addr := strings.TrimSpace(a.Addr())
		if addr == "" {
			addr = strings.TrimSpace(a.Name)
		}
		if addr != "" {
			parts = append(parts, addr)
		}
	}
	return strings.Join(parts, ", ")
}

// Minimal header parsing fallback using net/mail for servers that omit
// envelope data in the fetch response.
func parseHeadersFallback(raw []byte) (subject, from, to string, date time.Time) {
	r := strings.NewReader(string(raw))
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return "", "", "", time.Time{}
	}

	h := msg.Header
	subject = h.Get("Subject")
	from = h.Get("From")
	to = h.Get("To")

	if ds := h.Get("Date"); ds != "" {
		if t, err := mail.ParseDate(ds); err == nil {
			date = t
		}
	}

	_, _ = io.Copy(io.Discard, msg.Body)
	return
}

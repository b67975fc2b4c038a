package mailbox

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/url"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

// parseRFC822 splits a raw message into its text and html parts.
// Alert parsing only consumes the text part; html never gets parsed.
func parseRFC822(raw []byte, fallbackSubject string) (messageID, bodyText, htmlBody, subject string) {
	if len(raw) == 0 {
		return "", "", "", fallbackSubject
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		// If parsing fails, treat raw as plaintext best-effort.
		return "", string(raw), "", fallbackSubject
	}

	messageID = strings.TrimSpace(msg.Header.Get("Message-Id"))
	if messageID == "" {
		messageID = strings.TrimSpace(msg.Header.Get("Message-ID"))
	}

	subject = strings.TrimSpace(msg.Header.Get("Subject"))
	if subject == "" {
		subject = fallbackSubject
	}

	bodyRaw, _ := io.ReadAll(io.LimitReader(msg.Body, 25<<20))

	plain, htmlPart := extractMIMETextParts(msg.Header, bodyRaw)

	bodyText = plain
	htmlBody = htmlPart

	if bodyText == "" && htmlBody == "" {
		bodyText = string(bodyRaw)
	}

	return messageID, bodyText, htmlBody, subject
}

func extractMIMETextParts(h mail.Header, body []byte) (plain, htmlPart string) {
	ct := h.Get("Content-Type")
	cte := strings.ToLower(strings.TrimSpace(h.Get("Content-Transfer-Encoding")))

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		s := decodeTransferEncoding(body, cte)
		return string(s), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			s := decodeTransferEncoding(body, cte)
			return string(s), ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)

		var bestPlain, bestHTML string
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			partCTE := strings.ToLower(strings.TrimSpace(p.Header.Get("Content-Transfer-Encoding")))
			partCT := p.Header.Get("Content-Type")
			pMedia, _, _ := mime.ParseMediaType(partCT)
			pMedia = strings.ToLower(pMedia)

			b, _ := io.ReadAll(io.LimitReader(p, 20<<20))
			b = decodeTransferEncoding(b, partCTE)

			if strings.HasPrefix(pMedia, "multipart/") {
				pl, ht := extractMIMETextParts(mail.Header(p.Header), b)
				if len(pl) > len(bestPlain) {
					bestPlain = pl
				}
				if len(ht) > len(bestHTML) {
					bestHTML = ht
				}
				continue
			}

			switch {
			case strings.HasPrefix(pMedia, "text/plain"):
				if len(b) > len(bestPlain) {
					bestPlain = string(b)
				}
			case strings.HasPrefix(pMedia, "text/html"):
				if len(b) > len(bestHTML) {
					bestHTML = string(b)
				}
			}
		}
		return bestPlain, bestHTML
	}

	s := decodeTransferEncoding(body, cte)
	if strings.HasPrefix(mediaType, "text/html") {
		return "", string(s)
	}
	return string(s), ""
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch cte {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	default:
		return b
	}
}

func decodeRFC2047(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	dec := new(mime.WordDecoder)
	out, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}

// ParseAlertBody turns a plain-text alert body into person records.
// Alert emails list one block per lead:
//
//	Name: Jane Doe
//	Headline: Software Engineer at Acme
//	Location: Berlin, Germany
//	Industry: Software
//	Company: Acme
//	Profile: https://leads.example.com/in/jane-doe-12345/
//
// A "Name:" line starts a new record; unknown lines are ignored. The
// record id comes from the profile URL slug when one is present.
func ParseAlertBody(body string) []domain.RawRecord {
	var out []domain.RawRecord
	var cur *domain.RawRecord

	flush := func() {
		if cur == nil {
			return
		}
		if strings.TrimSpace(cur.Name) != "" {
			if cur.ID == "" {
				cur.ID = slugFromProfileURL(cur.ProfileURL)
			}
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = source.CleanText(line)
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// "Profile: https://..." keeps the URL scheme's colon intact
		// because only the first colon splits.
		val = strings.TrimSpace(val)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			flush()
			cur = &domain.RawRecord{Name: val}
		case "headline":
			if cur != nil {
				cur.Headline = val
			}
		case "location":
			if cur != nil {
				cur.Location = source.NormalizeLocation(val)
			}
		case "industry":
			if cur != nil {
				cur.Industry = val
			}
		case "company":
			if cur != nil {
				cur.CurrentCompany = val
			}
		case "profile", "profile url":
			if cur != nil {
				cur.ProfileURL = val
			}
		}
	}
	flush()

	return out
}

// slugFromProfileURL extracts the last path segment of a profile URL,
// e.g. ".../in/jane-doe-12345/" -> "jane-doe-12345".
func slugFromProfileURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func containsAnyCI(s string, any []string) bool {
	ls := strings.ToLower(s)
	for _, a := range any {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if strings.Contains(ls, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

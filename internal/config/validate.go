package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it. Errors block saving; warnings do not.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Sources.Mailbox.SearchSubjectAny = trimList(out.Sources.Mailbox.SearchSubjectAny)
	for i := range out.Polling.Searches {
		out.Polling.Searches[i].Keywords = strings.TrimSpace(out.Polling.Searches[i].Keywords)
		out.Polling.Searches[i].Kind = strings.ToLower(strings.TrimSpace(out.Polling.Searches[i].Kind))
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Polling.IntervalSeconds <= 0 {
		res.addErr("polling.interval_seconds must be > 0")
	} else if out.Polling.IntervalSeconds < 30 {
		res.addWarn("polling.interval_seconds is very low (%d) and may hammer the source.", out.Polling.IntervalSeconds)
	}

	if out.Polling.Enabled && len(out.Polling.Searches) == 0 {
		res.addWarn("polling is enabled but polling.searches is empty; each cycle will do nothing.")
	}

	for i, s := range out.Polling.Searches {
		if s.Kind != "person" && s.Kind != "company" {
			res.addErr("polling.searches[%d].kind must be person or company", i)
		}
		if s.Keywords == "" {
			res.addErr("polling.searches[%d].keywords is required", i)
		}
		if s.Limit < 0 {
			res.addErr("polling.searches[%d].limit must be >= 0", i)
		}
	}

	if !out.Sources.Sample.Enabled && !out.Sources.Remote.Enabled {
		res.addWarn("no query source enabled; searches will fail until sample or remote is switched on.")
	}

	if out.Sources.Remote.Enabled {
		if strings.TrimSpace(out.Sources.Remote.BaseURL) == "" {
			res.addErr("sources.remote.base_url is required when remote is enabled")
		}
		if strings.TrimSpace(out.Sources.Remote.Username) == "" {
			res.addErr("sources.remote.username is required when remote is enabled (token lives in the keyring under it)")
		}
		if out.Sources.Remote.RatePerSec <= 0 {
			res.addErr("sources.remote.rate_per_sec must be > 0")
		}
	}

	// mailbox required fields if enabled (password not required here; it lives in the keyring)
	if out.Sources.Mailbox.Enabled {
		if strings.TrimSpace(out.Sources.Mailbox.IMAPHost) == "" {
			res.addErr("sources.mailbox.imap_host is required when mailbox is enabled")
		}
		if out.Sources.Mailbox.IMAPPort == 0 {
			res.addErr("sources.mailbox.imap_port is required when mailbox is enabled")
		}
		if strings.TrimSpace(out.Sources.Mailbox.Username) == "" {
			res.addErr("sources.mailbox.username is required when mailbox is enabled")
		}
		if strings.TrimSpace(out.Sources.Mailbox.Mailbox) == "" {
			res.addErr("sources.mailbox.mailbox is required when mailbox is enabled")
		}
		if len(out.Sources.Mailbox.SearchSubjectAny) == 0 {
			res.addWarn("sources.mailbox.search_subject_any is empty; every unseen email will be scanned.")
		}
	}

	for i, r := range out.Tagging.RoleRules {
		if r.Tag == "" {
			res.addErr("tagging.role_rules[%d].tag is required", i)
		}
		if len(r.Any) == 0 {
			res.addErr("tagging.role_rules[%d].any must have at least 1 term", i)
		}
		for j, term := range r.Any {
			if strings.TrimSpace(term) == "" {
				res.addErr("tagging.role_rules[%d].any[%d] cannot be empty", i, j)
			}
		}
	}

	return out, res
}

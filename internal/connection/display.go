package connection

import "strings"

// Tooltip line prefixes. These match the strings an existing UI shows,
// so they are fixed rather than configurable.
const (
	tooltipConnString  = "Connection string: "
	tooltipServer      = "Server name: "
	tooltipDatabase    = "Database name: "
	tooltipLogin       = "Login name: "
	tooltipEncryption  = "Connection encryption: "
	tooltipVersion     = "Server version: "
	tooltipEncrypted   = "Encrypted"
	tooltipUnencrypted = "Not encrypted"

	// tooltipDefaultDatabase marks a connection that uses the server's
	// default database.
	tooltipDefaultDatabase = "<connection default>"

	crlf     = "\r\n"
	ellipsis = "…"
)

// PickLabel returns the picklist label for a plain connection: the
// server when set, otherwise the raw connection string (which may be
// empty; callers must tolerate an empty label). The item type tag is
// carried by the picklist entry itself and not used here.
func (c *Info) PickLabel(_ PickItemType) string {
	if c.Server != "" {
		return c.Server
	}
	return c.ConnectionString
}

// PickLabel returns the picklist label for a saved profile: the profile
// name when set, otherwise the plain-connection label.
func (p *Profile) PickLabel(itemType PickItemType) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Info.PickLabel(itemType)
}

// PickDescription returns the bracketed summary shown next to the label.
func (c *Info) PickDescription(d Defaults, env HostEnv) string {
	return "[" + c.DisplayString(d, env) + "]"
}

// PickDescription returns the bracketed summary for a saved profile.
func (p *Profile) PickDescription(d Defaults, env HostEnv) string {
	return "[" + p.DisplayString(d, env) + "]"
}

// PickDetails returns the detail line for a picklist entry. It is
// always empty; the slot is reserved and callers rely on it never
// carrying a value.
func (c *Info) PickDetails() string {
	return ""
}

// DisplayString returns the one-line summary of a plain connection:
// the raw connection string when set, otherwise the server, database
// (or the default-database label), and login joined as segments. The
// result is capped at d.MaxDisplayLength characters with a trailing
// ellipsis.
func (c *Info) DisplayString(d Defaults, env HostEnv) string {
	var text string
	if c.ConnectionString != "" {
		text = c.ConnectionString
	} else {
		text = c.Server
		if c.Database != "" {
			text = appendSegment(text, c.Database)
		} else {
			text = appendSegment(text, d.DefaultDatabaseLabel)
		}
		text = appendSegment(text, c.UserOrDomainLogin(env, ""))
	}
	return truncateChars(text, d.MaxDisplayLength)
}

// DisplayString returns the one-line summary of a saved profile. A
// named profile with a connection string shows the name with the
// connection string appended; every other shape matches the plain
// connection summary.
func (p *Profile) DisplayString(d Defaults, env HostEnv) string {
	if p.ConnectionString != "" && p.Name != "" {
		return truncateChars(appendSegment(p.Name, p.ConnectionString), d.MaxDisplayLength)
	}
	return p.Info.DisplayString(d, env)
}

// UserOrDomainLogin returns the login name to display. Integrated
// connections resolve to DOMAIN\USER from the host environment on
// Windows and to "" elsewhere; otherwise the user field wins, then the
// fallback.
func (c *Info) UserOrDomainLogin(env HostEnv, fallback string) string {
	if c.AuthType == AuthIntegrated {
		if env.IsWindows() {
			return env.Getenv("USERDOMAIN") + `\` + env.Getenv("USERNAME")
		}
		return ""
	}
	if c.User != "" {
		return c.User
	}
	return fallback
}

// Tooltip returns the multi-line hover text for a connection. Every
// line, including the last, is CRLF-terminated; downstream consumers
// depend on the exact byte layout.
func (c *Info) Tooltip(srv *ServerInfo) string {
	var b strings.Builder
	if c.ConnectionString != "" {
		b.WriteString(tooltipConnString + c.ConnectionString + crlf)
	} else {
		database := c.Database
		if database == "" {
			database = tooltipDefaultDatabase
		}
		encryption := tooltipUnencrypted
		if c.Encrypt {
			encryption = tooltipEncrypted
		}
		b.WriteString(tooltipServer + c.Server + crlf)
		b.WriteString(tooltipDatabase + database + crlf)
		b.WriteString(tooltipLogin + c.User + crlf)
		b.WriteString(tooltipEncryption + encryption + crlf)
	}
	if srv != nil && srv.ServerVersion != "" {
		b.WriteString(tooltipVersion + srv.ServerVersion + crlf)
	}
	return b.String()
}

// appendSegment joins a display fragment onto base with " : ", or
// returns base unchanged when the fragment is empty. Segment order is
// fixed by the callers and never reordered.
func appendSegment(base, value string) string {
	if value == "" {
		return base
	}
	return base + " : " + value
}

// truncateChars caps s at max characters (not bytes) and marks the cut
// with a single ellipsis.
func truncateChars(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}

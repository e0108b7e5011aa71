package connection

import "strings"

// ApplyDefaults fills unset fields of c in place so that the string
// fields are never left unset, the timeout and application name fall
// back to the configured defaults, and Azure SQL servers always get an
// encrypted connection with at least the Azure minimum timeout.
//
// Re-running it on an already-normalized record changes nothing: it
// only fills fields that are still at their zero value, and the Azure
// adjustments are monotonic.
func (c *Info) ApplyDefaults(d Defaults) {
	// Zero-value string fields stay empty strings; nothing to do for
	// Server, Database, User, and Password beyond the guarantee itself.
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.ApplicationName == "" {
		c.ApplicationName = d.ApplicationName
	}

	if c.IsAzure(d) {
		c.Encrypt = true
		if c.ConnectTimeout < d.AzureConnectTimeout {
			c.ConnectTimeout = d.AzureConnectTimeout
		}
	}
}

// IsAzure reports whether the server is an Azure SQL endpoint, by
// case-sensitive suffix match against the configured Azure domain.
func (c *Info) IsAzure(d Defaults) bool {
	return c.Server != "" && strings.HasSuffix(c.Server, d.AzureSuffix)
}

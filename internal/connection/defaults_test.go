package connection

import "testing"

func TestApplyDefaults_FillsUnsetFields(t *testing.T) {
	d := DefaultSettings()
	c := &Info{}
	c.ApplyDefaults(d)

	if c.Server != "" || c.Database != "" || c.User != "" || c.Password != "" {
		t.Errorf("string fields should stay empty, got %+v", c)
	}
	if c.ConnectTimeout != d.ConnectTimeout {
		t.Errorf("ConnectTimeout should be %d, got %d", d.ConnectTimeout, c.ConnectTimeout)
	}
	if c.Encrypt {
		t.Error("Encrypt should default to false")
	}
	if c.ApplicationName != d.ApplicationName {
		t.Errorf("ApplicationName should be %q, got %q", d.ApplicationName, c.ApplicationName)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	d := DefaultSettings()
	c := &Info{
		Server:          "myserver",
		Database:        "mydb",
		User:            "sa",
		ConnectTimeout:  45,
		ApplicationName: "myapp",
	}
	c.ApplyDefaults(d)

	if c.ConnectTimeout != 45 {
		t.Errorf("explicit timeout should survive, got %d", c.ConnectTimeout)
	}
	if c.ApplicationName != "myapp" {
		t.Errorf("explicit application name should survive, got %q", c.ApplicationName)
	}
}

func TestApplyDefaults_Azure(t *testing.T) {
	d := DefaultSettings()

	tests := []struct {
		name        string
		server      string
		timeout     int
		wantEncrypt bool
		wantTimeout int
	}{
		{"azure raises low timeout", "myserver.database.windows.net", 5, true, d.AzureConnectTimeout},
		{"azure keeps high timeout", "myserver.database.windows.net", 120, true, 120},
		{"azure fills unset timeout", "myserver.database.windows.net", 0, true, d.AzureConnectTimeout},
		{"non-azure untouched", "myserver", 5, false, 5},
		{"suffix match is case-sensitive", "myserver.DATABASE.WINDOWS.NET", 5, false, 5},
		{"empty server is not azure", "", 5, false, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Info{Server: tc.server, ConnectTimeout: tc.timeout}
			c.ApplyDefaults(d)
			if c.Encrypt != tc.wantEncrypt {
				t.Errorf("Encrypt = %v, want %v", c.Encrypt, tc.wantEncrypt)
			}
			if c.ConnectTimeout != tc.wantTimeout {
				t.Errorf("ConnectTimeout = %d, want %d", c.ConnectTimeout, tc.wantTimeout)
			}
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	d := DefaultSettings()
	c := &Info{Server: "myserver.database.windows.net", ConnectTimeout: 5}
	c.ApplyDefaults(d)
	first := *c
	c.ApplyDefaults(d)
	if *c != first {
		t.Errorf("second ApplyDefaults changed the record: %+v != %+v", *c, first)
	}
}

func TestIsAzure(t *testing.T) {
	d := DefaultSettings()
	if !(&Info{Server: "a.database.windows.net"}).IsAzure(d) {
		t.Error("azure suffix should match")
	}
	if (&Info{Server: "a.example.com"}).IsAzure(d) {
		t.Error("non-azure host should not match")
	}
	if (&Info{}).IsAzure(d) {
		t.Error("empty server should not match")
	}
}

package cmd

import "testing"

func TestDataPathResolution(t *testing.T) {
	// Flag wins over environment, environment wins over the default.
	*dataDir = ""
	t.Setenv("FMS_DATA_DIR", "")
	if got := dataPath(); got != ".fms" {
		t.Errorf("dataPath() = %q, want .fms", got)
	}
	t.Setenv("FMS_DATA_DIR", "/tmp/books")
	if got := dataPath(); got != "/tmp/books" {
		t.Errorf("dataPath() = %q, want /tmp/books", got)
	}
	*dataDir = "elsewhere"
	defer func() { *dataDir = "" }()
	if got := dataPath(); got != "elsewhere" {
		t.Errorf("dataPath() = %q, want elsewhere", got)
	}
}

func TestCurrentUserResolution(t *testing.T) {
	*userFlag = ""
	t.Setenv("FMS_USER", "")
	if got := currentUser(); got != "main" {
		t.Errorf("currentUser() = %q, want main", got)
	}
	t.Setenv("FMS_USER", "harsh")
	if got := currentUser(); got != "harsh" {
		t.Errorf("currentUser() = %q, want harsh", got)
	}
}

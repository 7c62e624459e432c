package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remedia/internal/threat"
)

func TestBuildSerializesFullRecord(t *testing.T) {
	var extra threat.Extras
	require.NoError(t, json.Unmarshal([]byte(`{"severity":"high","origin":{"host":"ws-14"}}`), &extra))

	rec := threat.Record{
		ID:          "malware-001",
		Path:        "/home/user/x.bin",
		Hash:        "abc123",
		Description: "ransomware encrypting /home",
		Extra:       extra,
	}

	p, err := Build(rec)
	require.NoError(t, err)

	assert.Contains(t, p.System, "cybersecurity assistant")
	assert.Contains(t, p.User, "Threat Data:")
	assert.Contains(t, p.User, `"malware-001"`)
	assert.Contains(t, p.User, `"/home/user/x.bin"`)
	assert.Contains(t, p.User, `"abc123"`)
	assert.Contains(t, p.User, `"severity"`)
	assert.Contains(t, p.User, `"ws-14"`)
}

func TestBuildIsDeterministic(t *testing.T) {
	var extra threat.Extras
	require.NoError(t, json.Unmarshal([]byte(`{"b":"2","a":"1"}`), &extra))
	rec := threat.Record{ID: "t-1", Extra: extra}

	first, err := Build(rec)
	require.NoError(t, err)
	second, err := Build(rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildOmitsEmptyOptionalFields(t *testing.T) {
	p, err := Build(threat.Record{ID: "t-2"})
	require.NoError(t, err)
	assert.NotContains(t, p.User, "file_path")
	assert.NotContains(t, p.User, "sha256")
	assert.NotContains(t, p.User, "additional_info")
}

package crm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_LifecycleLabel(t *testing.T) {
	tests := []struct {
		stage, want string
	}{
		{"", ""},
		{"customer", "Customer"},
		{"salesQualifiedLead", "Sales Qualified Lead"},
		{"marketingqualifiedlead", "Marketingqualifiedlead"},
	}
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			c := Contact{LifecycleStage: tt.stage}
			assert.Equal(t, tt.want, c.LifecycleLabel())
		})
	}
}

func TestContact_DisplayName(t *testing.T) {
	assert.Equal(t, "Grace Hopper", (&Contact{Name: "Grace Hopper", Email: "g@example.com"}).DisplayName())
	assert.Equal(t, "g@example.com", (&Contact{Email: "g@example.com"}).DisplayName())
}

func TestContact_Decode(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(`{"id":"901","email":"g@example.com","name":"Grace","lifecycleStage":"lead","company":"Navy"}`), &c))
	assert.Equal(t, ID("901"), c.ID)

	var numeric Contact
	require.NoError(t, json.Unmarshal([]byte(`{"id":902,"email":"n@example.com"}`), &numeric))
	assert.Equal(t, ID("902"), numeric.ID)
	assert.Equal(t, "Navy", c.Company)
}

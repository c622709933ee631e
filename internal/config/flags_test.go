package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetAddress_Set_TableTest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{name: "host and port", input: "localhost:3000", wantHost: "localhost", wantPort: 3000},
		{name: "ip and port", input: "127.0.0.1:8080", wantHost: "127.0.0.1", wantPort: 8080},
		{name: "empty host", input: ":3000", wantHost: "", wantPort: 3000},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "port not a number", input: "localhost:abc", wantErr: true},
		{name: "negative port", input: "localhost:-1", wantErr: true},
		{name: "bad hostname", input: "not-an-ip:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantHost, addr.Host)
			assert.Equal(t, tt.wantPort, addr.Port)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Empty(t, (&NetAddress{}).String())
	assert.Equal(t, "localhost:3000", (&NetAddress{Host: "localhost", Port: 3000}).String())
	assert.Equal(t, ":3000", (&NetAddress{Port: 3000}).String())
}

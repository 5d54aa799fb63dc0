package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePeerAddr(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"127.0.0.1:9090", false},
		{"asset-1.asset.svc:9090", false},
		{"[::1]:9091", false},
		{"localhost", true},
		{":9090", true},
		{"127.0.0.1:0", true},
		{"127.0.0.1:70000", true},
		{"127.0.0.1:http", true},
		{"bad_host:9090", true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := ValidatePeerAddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

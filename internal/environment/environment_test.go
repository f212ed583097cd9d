package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		creds      Credentials
		want       Endpoints
		mismatched bool
	}{
		{
			name:  "sandbox",
			creds: Credentials{ClientKey: "SB-Mid-client-abc", ServerKey: "SB-Mid-server-abc"},
			want:  Endpoints{Sandbox: true, SnapScriptURL: SandboxSnapScriptURL, TransactionURL: SandboxTransactionURL},
		},
		{
			name:  "production",
			creds: Credentials{ClientKey: "Mid-client-abc", ServerKey: "Mid-server-abc"},
			want:  Endpoints{SnapScriptURL: ProductionSnapScriptURL, TransactionURL: ProductionTransactionURL},
		},
		{
			name:       "only client key sandbox",
			creds:      Credentials{ClientKey: "SB-Mid-client-abc", ServerKey: "Mid-server-abc"},
			want:       Endpoints{SnapScriptURL: ProductionSnapScriptURL, TransactionURL: ProductionTransactionURL},
			mismatched: true,
		},
		{
			name:       "only server key sandbox",
			creds:      Credentials{ClientKey: "Mid-client-abc", ServerKey: "SB-Mid-server-abc"},
			want:       Endpoints{SnapScriptURL: ProductionSnapScriptURL, TransactionURL: ProductionTransactionURL},
			mismatched: true,
		},
		{
			name:  "lowercase prefix is not sandbox",
			creds: Credentials{ClientKey: "sb-client", ServerKey: "sb-server"},
			want:  Endpoints{SnapScriptURL: ProductionSnapScriptURL, TransactionURL: ProductionTransactionURL},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.creds))
			assert.Equal(t, tt.mismatched, tt.creds.Mismatched())
		})
	}
}

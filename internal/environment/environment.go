// Package environment selects the Midtrans sandbox or production endpoints
// from the configured credential pair.
package environment

import "strings"

const SandboxPrefix = "SB-"

const (
	SandboxSnapScriptURL     = "https://app.sandbox.midtrans.com/snap/snap.js"
	SandboxTransactionURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	ProductionSnapScriptURL  = "https://app.midtrans.com/snap/snap.js"
	ProductionTransactionURL = "https://app.midtrans.com/snap/v1/transactions"
)

type Credentials struct {
	ClientKey string
	ServerKey string
}

type Endpoints struct {
	Sandbox        bool
	SnapScriptURL  string
	TransactionURL string
}

// IsSandbox reports whether both keys carry the sandbox prefix.
func (c Credentials) IsSandbox() bool {
	return strings.HasPrefix(c.ClientKey, SandboxPrefix) && strings.HasPrefix(c.ServerKey, SandboxPrefix)
}

// Mismatched reports a pair where only one key carries the sandbox prefix.
// Such a pair resolves to production.
func (c Credentials) Mismatched() bool {
	return strings.HasPrefix(c.ClientKey, SandboxPrefix) != strings.HasPrefix(c.ServerKey, SandboxPrefix)
}

func Resolve(c Credentials) Endpoints {
	if c.IsSandbox() {
		return Endpoints{
			Sandbox:        true,
			SnapScriptURL:  SandboxSnapScriptURL,
			TransactionURL: SandboxTransactionURL,
		}
	}
	return Endpoints{
		SnapScriptURL:  ProductionSnapScriptURL,
		TransactionURL: ProductionTransactionURL,
	}
}

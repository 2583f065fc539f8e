package config

import "os"

// Credentials holds the env-backed secrets real trading needs. They never
// live in YAML.
type Credentials struct {
	PrivateKey    string
	WalletAddress string
	RPCURL        string
}

// LoadCredentials reads the trading credentials from the environment.
func LoadCredentials() Credentials {
	return Credentials{
		PrivateKey:    os.Getenv("PRIVATE_KEY"),
		WalletAddress: os.Getenv("WALLET_ADDRESS"),
		RPCURL:        os.Getenv("RPC_URL"),
	}
}

// Complete reports whether every credential real trading requires is set.
// Simulation mode never checks this.
func (c Credentials) Complete() bool {
	return c.PrivateKey != "" && c.WalletAddress != "" && c.RPCURL != ""
}

package wallet

// NewWallet is the result of creating a custodial wallet. The mnemonic
// and private key are returned exactly once and stored only encrypted.
type NewWallet struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	Mnemonic       string `json:"mnemonic"`
	PublicKey      string `json:"publicKey"`
	PrivateKey     string `json:"privateKey"`
	DerivationPath string `json:"derivationPath"`
}

package command

import "photo-analyzer-go/domain/provider"

// SelectProvider makes a provider the one used for the next analysis.
type SelectProvider struct {
	baseProviderCommand
}

func NewSelectProvider(p provider.Provider) *SelectProvider {
	return &SelectProvider{baseProviderCommand{provider: p}}
}

func (c *SelectProvider) CommandName() string {
	return "SelectProvider"
}

// SetCredential submits a user-entered key for a provider.
// An empty Input restores the provider's default key.
type SetCredential struct {
	baseProviderCommand
	Input string
}

func NewSetCredential(p provider.Provider, input string) *SetCredential {
	return &SetCredential{
		baseProviderCommand: baseProviderCommand{provider: p},
		Input:               input,
	}
}

func (c *SetCredential) CommandName() string {
	return "SetCredential"
}

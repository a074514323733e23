package event

import (
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/provider"
)

// ProviderSelected is published when the active provider changes.
// Status is the credential status of the newly selected provider.
type ProviderSelected struct {
	baseProviderEvent
	Status credential.Status
}

func NewProviderSelected(p provider.Provider, status credential.Status) *ProviderSelected {
	return &ProviderSelected{
		baseProviderEvent: baseProviderEvent{provider: p},
		Status:            status,
	}
}

func (e *ProviderSelected) EventName() string {
	return "ProviderSelected"
}

// CredentialUpdated is published when a provider's active key changes.
// The key itself is never carried.
type CredentialUpdated struct {
	baseProviderEvent
	Status credential.Status
}

func NewCredentialUpdated(p provider.Provider, status credential.Status) *CredentialUpdated {
	return &CredentialUpdated{
		baseProviderEvent: baseProviderEvent{provider: p},
		Status:            status,
	}
}

func (e *CredentialUpdated) EventName() string {
	return "CredentialUpdated"
}

// CredentialRejected is published when a submitted key fails validation.
// The stored key is unchanged.
type CredentialRejected struct {
	baseProviderEvent
	Error error
}

func NewCredentialRejected(p provider.Provider, err error) *CredentialRejected {
	return &CredentialRejected{
		baseProviderEvent: baseProviderEvent{provider: p},
		Error:             err,
	}
}

func (e *CredentialRejected) EventName() string {
	return "CredentialRejected"
}

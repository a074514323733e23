// Package command defines all commands that can be sent to the application.
// Commands represent user intentions and are processed by the coordinator.
package command

import "photo-analyzer-go/domain/provider"

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// ProviderCommand is a command that targets a specific provider.
type ProviderCommand interface {
	Command
	// Provider returns the target provider
	Provider() provider.Provider
}

// baseProviderCommand provides common implementation for provider commands.
type baseProviderCommand struct {
	provider provider.Provider
}

func (c *baseProviderCommand) Provider() provider.Provider {
	return c.provider
}

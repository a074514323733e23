// Package credential resolves and stores the API keys used by each provider.
package credential

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"photo-analyzer-go/domain/provider"
)

// MinLength is the minimum length of a user-supplied key, in characters.
const MinLength = 20

// Common errors for credential operations.
var (
	ErrInvalidCredentialFormat = errors.New("invalid credential format")
	ErrUnknownProvider         = errors.New("unknown provider")
)

// Status classifies the active credential of a provider for display.
type Status int

const (
	// NoKey means the provider has no usable credential.
	NoKey Status = iota
	// UsingDefault means the active credential is the one loaded from the environment.
	UsingDefault
	// CustomKeySet means the user supplied a key at runtime.
	CustomKeySet
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case NoKey:
		return "NoKey"
	case UsingDefault:
		return "UsingDefault"
	case CustomKeySet:
		return "CustomKeySet"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Classify derives the status from a credential value and the provider default.
func Classify(value, defaultValue string) Status {
	switch {
	case value == "":
		return NoKey
	case value == defaultValue:
		return UsingDefault
	default:
		return CustomKeySet
	}
}

// Validate checks the shape of a user-supplied key.
// Empty input is valid and means "use the default".
func Validate(input string) error {
	input = strings.TrimSpace(input)
	if input != "" && utf8.RuneCountInString(input) < MinLength {
		return fmt.Errorf("%w: key must be at least %d characters", ErrInvalidCredentialFormat, MinLength)
	}
	return nil
}

type slot struct {
	defaultKey string
	active     string
}

// Keyring keeps one credential slot per provider.
// Each slot remembers the provider default and the currently active key.
type Keyring struct {
	slots map[provider.Provider]*slot
	mu    sync.RWMutex
}

// NewKeyring creates a keyring whose slots start on the given defaults.
// Providers missing from defaults get an empty default.
func NewKeyring(defaults map[provider.Provider]string) *Keyring {
	k := &Keyring{slots: make(map[provider.Provider]*slot, len(provider.All))}
	for _, p := range provider.All {
		def := strings.TrimSpace(defaults[p])
		k.slots[p] = &slot{defaultKey: def, active: def}
	}
	return k
}

// Resolve validates input and makes it the provider's active credential.
// Empty input restores the provider default. Invalid input leaves the slot untouched.
func (k *Keyring) Resolve(p provider.Provider, input string) (string, error) {
	if err := Validate(input); err != nil {
		return "", err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	s, ok := k.slots[p]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownProvider, p)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		s.active = s.defaultKey
	} else {
		s.active = input
	}
	return s.active, nil
}

// Active returns the provider's active credential.
func (k *Keyring) Active(p provider.Provider) string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if s, ok := k.slots[p]; ok {
		return s.active
	}
	return ""
}

// Default returns the provider's environment-loaded credential.
func (k *Keyring) Default(p provider.Provider) string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if s, ok := k.slots[p]; ok {
		return s.defaultKey
	}
	return ""
}

// Status returns the display classification of the provider's active credential.
func (k *Keyring) Status(p provider.Provider) Status {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.slots[p]
	if !ok {
		return NoKey
	}
	return Classify(s.active, s.defaultKey)
}

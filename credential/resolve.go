package credential

import (
	"strings"

	"github.com/teranos/cronstorm/errors"
)

// Resolve picks the API key for one invocation. A non-empty override wins and
// is never written to store. Otherwise the stored key is used; an empty
// result is allowed and simply omits authorization.
func Resolve(override string, store Store) (string, error) {
	if override != "" {
		return override, nil
	}
	key, _, err := store.Get()
	if err != nil {
		return "", errors.Wrap(err, "failed to read stored API key")
	}
	return key, nil
}

// Prompter asks the user for a secret
type Prompter interface {
	PromptSecret(label string) (string, error)
}

// Prompt text shown by Acquire
const (
	AcquireHint  = "To get an API key, visit this link in your browser: https://cronstorm.com"
	AcquireLabel = "API key"
)

// Acquire asks for a key and stores it, replacing any previous key.
// A blank answer leaves the store untouched.
func Acquire(prompter Prompter, store Store) (string, error) {
	answer, err := prompter.PromptSecret(AcquireLabel)
	if err != nil {
		return "", errors.Wrap(err, "failed to read API key")
	}

	key := strings.TrimSpace(answer)
	if key == "" {
		return "", errors.Mark(errors.New("no API key entered"), errors.ErrCredentialMissing)
	}

	if err := store.Set(key); err != nil {
		return "", errors.Wrap(err, "failed to store API key")
	}
	return key, nil
}

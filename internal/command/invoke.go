package command

import (
	"context"
	"fmt"

	easyjson "github.com/mailru/easyjson"

	"rsakeygen/internal/api/keysdto"
)

// Handler runs one command with raw JSON arguments and returns a JSON result.
type Handler func(ctx context.Context, args []byte) ([]byte, error)

// Handlers returns the command table, keyed by command name.
func (c *Commands) Handlers() map[string]Handler {
	return map[string]Handler{
		MakeRSAKeys: c.invokeMakeRSAKeys,
	}
}

// Invoke dispatches name to its handler.
func (c *Commands) Invoke(ctx context.Context, name string, args []byte) ([]byte, error) {
	h, ok := c.Handlers()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return h(ctx, args)
}

func (c *Commands) invokeMakeRSAKeys(ctx context.Context, args []byte) ([]byte, error) {
	var in keysdto.InvokeArgs
	if err := easyjson.Unmarshal(args, &in); err != nil {
		return nil, &Error{Err: fmt.Errorf("invalid arguments: %w", err)}
	}

	priv, pub, err := c.MakeRSAKeysContext(ctx, in.KeySize)
	if err != nil {
		return nil, err
	}
	return easyjson.Marshal(keysdto.KeyPairTuple{priv, pub})
}

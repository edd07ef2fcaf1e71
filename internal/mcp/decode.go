package mcp

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/reel/internal/errors"
)

// decode converts tool arguments into T by round-tripping them through JSON.
// A type mismatch is reported as INVALID_INPUT naming the argument.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, errors.NewInternal(fmt.Errorf("marshal %s args: %w", req.Params.Name, err))
	}
	if err := json.Unmarshal(b, &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return result, errors.NewInvalidInput(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.Kind()))
		}
		return result, errors.NewInvalidInput(fmt.Sprintf("invalid arguments: %v", err))
	}
	return result, nil
}

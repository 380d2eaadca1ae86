package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler turns a LastEvaluatedKey into an opaque next token bound to
// scope, and back. A token minted for one scope never opens in another.
type TokenMarshaler interface {
	Marshal(scope string, lastKey map[string]types.AttributeValue) ([]byte, error)
	Unmarshal(scope string, token []byte) (map[string]types.AttributeValue, error)
}

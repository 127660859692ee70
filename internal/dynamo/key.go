package dynamo

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Key attributes may be strings, numbers or binary. An id handed out by the
// store is "<type>:<value>", e.g. "S:abc" or "N:42".
const (
	keyString = "S"
	keyNumber = "N"
	keyBinary = "B"
)

func encodeKey(v types.AttributeValue) (string, error) {
	switch v := v.(type) {
	case *types.AttributeValueMemberS:
		return keyString + ":" + v.Value, nil
	case *types.AttributeValueMemberN:
		return keyNumber + ":" + v.Value, nil
	case *types.AttributeValueMemberB:
		return keyBinary + ":" + base64.StdEncoding.EncodeToString(v.Value), nil
	default:
		return "", fmt.Errorf("unsupported %q attribute type %T", attrID, v)
	}
}

func decodeKey(id string) (types.AttributeValue, error) {
	typ, value, ok := strings.Cut(id, ":")
	if !ok {
		return nil, fmt.Errorf("malformed key %q", id)
	}

	switch typ {
	case keyString:
		return &types.AttributeValueMemberS{Value: value}, nil
	case keyNumber:
		return &types.AttributeValueMemberN{Value: value}, nil
	case keyBinary:
		b, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("malformed binary key %q: %w", id, err)
		}
		return &types.AttributeValueMemberB{Value: b}, nil
	default:
		return nil, fmt.Errorf("unknown key type %q in %q", typ, id)
	}
}

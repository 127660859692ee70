// Package dynamo stores users in a DynamoDB table that carries a global
// secondary index on email.
package dynamo

import (
	"context"
	"fmt"

	"cliente-go/internal/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrID    = "id"
	attrEmail = "email"
)

// API is the subset of the DynamoDB client the store calls.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// ClientOptions tune how the SDK client is built. Empty fields fall back to
// the SDK defaults.
type ClientOptions struct {
	Region   string
	Endpoint string // e.g. http://localhost:8000 for DynamoDB Local
}

// NewClient builds a DynamoDB client from the default credential chain.
func NewClient(ctx context.Context, opts ClientOptions) (*dynamodb.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// Store implements user.Store on a single table.
type Store struct {
	client     API
	table      string
	emailIndex string
}

var _ user.Store = (*Store)(nil)

func New(client API, table, emailIndex string) *Store {
	return &Store{
		client:     client,
		table:      table,
		emailIndex: emailIndex,
	}
}

// FindIDsByEmail queries the email index, projecting only the id. The ids
// carry their DynamoDB type so UpdateFields can address the same key.
func (s *Store) FindIDsByEmail(ctx context.Context, email string) ([]string, error) {
	keyCond := expression.Key(attrEmail).Equal(expression.Value(email))
	proj := expression.NamesList(expression.Name(attrID))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithProjection(proj).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building email query: %w", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(s.emailIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s on %s: %w", s.emailIndex, s.table, err)
	}

	ids := make([]string, 0, len(out.Items))
	for _, item := range out.Items {
		id, err := itemID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func itemID(item map[string]types.AttributeValue) (string, error) {
	v, ok := item[attrID]
	if !ok {
		return "", fmt.Errorf("index item has no %q attribute", attrID)
	}
	return encodeKey(v)
}

// UpdateFields sets the patched attributes on the item and returns their new
// values. There is no condition on the write.
func (s *Store) UpdateFields(ctx context.Context, id string, patch user.Patch) (map[string]any, error) {
	if patch.Empty() {
		return nil, user.ErrNoFields
	}

	key, err := decodeKey(id)
	if err != nil {
		return nil, err
	}

	var upd expression.UpdateBuilder
	for _, a := range patch {
		upd = upd.Set(expression.Name(a.Field), expression.Value(a.Value))
	}

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return nil, fmt.Errorf("building update expression: %w", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       map[string]types.AttributeValue{attrID: key},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, fmt.Errorf("updating item %s in %s: %w", id, s.table, err)
	}

	updated := make(map[string]any, len(out.Attributes))
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("decoding updated attributes: %w", err)
	}
	return updated, nil
}

// Health describes the table and reports it up while it is usable.
func (s *Store) Health(ctx context.Context) map[string]string {
	stats := map[string]string{
		"backend": "dynamodb",
		"table":   s.table,
	}

	out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("describe table failed: %v", err)
		return stats
	}

	if out.Table == nil {
		stats["status"] = "down"
		stats["error"] = "describe table returned no table"
		return stats
	}

	status := out.Table.TableStatus
	stats["table_status"] = string(status)
	if status == types.TableStatusActive || status == types.TableStatusUpdating {
		stats["status"] = "up"
	} else {
		stats["status"] = "down"
	}
	return stats
}

// Package dynamostore persists records in a DynamoDB table.
//
// Table requirements:
//   - partition key: namespace (string)
//   - sort key: key (string)
package dynamostore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// API is the subset of the DynamoDB client the store calls.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Config selects the table and, for local development, the endpoint.
type Config struct {
	Table    string
	Region   string
	Endpoint string
}

type recordItem struct {
	Namespace string `dynamodbav:"namespace"`
	Key       string `dynamodbav:"key"`
	Value     []byte `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// Store is a ports.KeyValueStore backed by DynamoDB.
type Store struct {
	api   API
	table string
	now   func() time.Time
}

// New wraps an existing client.
func New(api API, table string) *Store {
	return &Store{api: api, table: table, now: time.Now}
}

// Connect builds a client from the default AWS credential chain. When an
// endpoint is set (DynamoDB Local) static dummy credentials are used.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return New(client, cfg.Table), nil
}

func itemKey(namespace, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"namespace": &types.AttributeValueMemberS{Value: namespace},
		"key":       &types.AttributeValueMemberS{Value: key},
	}
}

// Get returns the stored value or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(namespace, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, domain.NewUnavailableError(s.Name(), err.Error())
	}

	if len(out.Item) == 0 {
		return nil, domain.NewNotFoundError("record", namespace+"/"+key)
	}

	var it recordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("decoding dynamodb item: %w", err)
	}

	return append([]byte(nil), it.Value...), nil
}

// Put writes the whole item, replacing any previous one.
func (s *Store) Put(ctx context.Context, namespace, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(recordItem{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encoding dynamodb item: %w", err)
	}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage.dynamodb" }

// Check verifies the table exists and is reachable.
func (s *Store) Check(ctx context.Context) error {
	_, err := s.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	return err
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error { return nil }

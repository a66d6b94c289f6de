package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/example/artisan-market/internal/domain/cart"
)

// NewDynamoClient builds a DynamoDB client. An explicit endpoint points the
// client at a local instance for development.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// DynamoCartStore implements cart.Store on a DynamoDB table keyed by user_id.
// Each cart is one item; the whole document is written back on every change.
type DynamoCartStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoCart is the DynamoDB item. Items are stored as a JSON blob so the
// table schema stays a single hash key.
type dynamoCart struct {
	UserID    string `dynamodbav:"user_id"`
	Items     string `dynamodbav:"items"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func NewDynamoCartStore(client *dynamodb.Client, tableName string) *DynamoCartStore {
	return &DynamoCartStore{client: client, tableName: tableName}
}

// Get returns (nil, nil) when the user has no stored cart.
func (s *DynamoCartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item dynamoCart
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart item: %w", err)
	}

	c := &cart.Cart{UserID: item.UserID}
	if err := json.Unmarshal([]byte(item.Items), &c.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart lines: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, item.CreatedAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return c, nil
}

func (s *DynamoCartStore) Save(ctx context.Context, c *cart.Cart) error {
	lines, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}

	av, err := attributevalue.MarshalMap(dynamoCart{
		UserID:    c.UserID,
		Items:     string(lines),
		CreatedAt: c.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put cart: %w", err)
	}
	return nil
}

func (s *DynamoCartStore) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/vivaldi/codec"
	"golang.org/x/sync/errgroup"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

const (
	attrNode       = "node"
	attrCoordinate = "coordinate"
	attrCodec      = "codec"
	attrUpdatedAt  = "updated_at"

	// DefaultWriteConcurrency is the number of PutItem calls a
	// DynamoDBStore issues in parallel.
	DefaultWriteConcurrency = 8
)

var _ Store = (*DynamoDBStore)(nil)

// DynamoDBStore implements Store on a DynamoDB table.
//
// Each node is one item. The coordinate travels as codec bytes together
// with the codec name, so the table can be read back even after the default
// codec changes.
//
// Table schema:
//   - Partition key: node (string)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name vivaldi-coordinates \
//	  --attribute-definitions AttributeName=node,AttributeType=S \
//	  --key-schema AttributeName=node,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type DynamoDBStore struct {
	client      DDBClient
	table       string
	codec       codec.Codec
	concurrency int
	now         func() time.Time
}

// DynamoDBOption configures a DynamoDBStore.
type DynamoDBOption func(*DynamoDBStore)

// WithCodec sets the codec used for new items. Defaults to codec.Default.
func WithCodec(c codec.Codec) DynamoDBOption {
	return func(s *DynamoDBStore) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithWriteConcurrency bounds the number of parallel PutItem calls.
func WithWriteConcurrency(n int) DynamoDBOption {
	return func(s *DynamoDBStore) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewDynamoDBStore creates a store backed by table.
func NewDynamoDBStore(client DDBClient, table string, optFns ...DynamoDBOption) *DynamoDBStore {
	s := &DynamoDBStore{
		client:      client,
		table:       table,
		codec:       codec.Default,
		concurrency: DefaultWriteConcurrency,
		now:         time.Now,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Put implements Store. Items are written concurrently; the first failure
// cancels the remaining writes.
func (s *DynamoDBStore) Put(ctx context.Context, entries ...Entry) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	updatedAt := strconv.FormatInt(s.now().UnixNano(), 10)

	for _, e := range entries {
		g.Go(func() error {
			data, err := s.codec.Marshal(e.Coord)
			if err != nil {
				return fmt.Errorf("encode coordinate of %s: %w", e.Node, err)
			}

			_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName: aws.String(s.table),
				Item: map[string]types.AttributeValue{
					attrNode:       &types.AttributeValueMemberS{Value: e.Node},
					attrCoordinate: &types.AttributeValueMemberB{Value: data},
					attrCodec:      &types.AttributeValueMemberS{Value: s.codec.Name()},
					attrUpdatedAt:  &types.AttributeValueMemberN{Value: updatedAt},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to put coordinate of %s: %w", e.Node, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Get implements Store.
func (s *DynamoDBStore) Get(ctx context.Context, node string) (Entry, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            nodeKey(node),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get coordinate of %s: %w", node, err)
	}
	if len(resp.Item) == 0 {
		return Entry{}, ErrNotFound
	}
	return decodeItem(resp.Item)
}

// List implements Store.
func (s *DynamoDBStore) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coordinates: %w", err)
		}
		for _, item := range page.Items {
			e, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}

	sortEntries(entries)
	return entries, nil
}

// Delete implements Store.
func (s *DynamoDBStore) Delete(ctx context.Context, node string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       nodeKey(node),
	})
	if err != nil {
		return fmt.Errorf("failed to delete coordinate of %s: %w", node, err)
	}
	return nil
}

func nodeKey(node string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrNode: &types.AttributeValueMemberS{Value: node},
	}
}

func decodeItem(item map[string]types.AttributeValue) (Entry, error) {
	nodeAttr, ok := item[attrNode].(*types.AttributeValueMemberS)
	if !ok {
		return Entry{}, errors.New("invalid node attribute in DynamoDB")
	}
	dataAttr, ok := item[attrCoordinate].(*types.AttributeValueMemberB)
	if !ok {
		return Entry{}, fmt.Errorf("invalid coordinate attribute for %s in DynamoDB", nodeAttr.Value)
	}
	codecAttr, ok := item[attrCodec].(*types.AttributeValueMemberS)
	if !ok {
		return Entry{}, fmt.Errorf("invalid codec attribute for %s in DynamoDB", nodeAttr.Value)
	}

	c, ok := codec.ByName(codecAttr.Value)
	if !ok {
		return Entry{}, fmt.Errorf("unknown codec %q for %s", codecAttr.Value, nodeAttr.Value)
	}

	e := Entry{Node: nodeAttr.Value}
	if err := c.Unmarshal(dataAttr.Value, &e.Coord); err != nil {
		return Entry{}, fmt.Errorf("decode coordinate of %s: %w", nodeAttr.Value, err)
	}
	return e, nil
}

package dynamostore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/storagetest"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// fakeTable keeps items keyed by namespace and key, the way the real table does.
type fakeTable struct {
	mu       sync.Mutex
	items    map[[2]string]map[string]types.AttributeValue
	lastPut  *dynamodb.PutItemInput
	failWith error
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[[2]string]map[string]types.AttributeValue)}
}

func keyOf(m map[string]types.AttributeValue) [2]string {
	ns := m["namespace"].(*types.AttributeValueMemberS).Value
	k := m["key"].(*types.AttributeValueMemberS).Value

	return [2]string{ns, k}
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	f.lastPut = in
	f.items[keyOf(in.Item)] = in.Item

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, f.failWith
}

func TestStore(t *testing.T) {
	storagetest.Run(t, New(newFakeTable(), "quotedesk-records"))
}

func TestPut_ItemShape(t *testing.T) {
	table := newFakeTable()
	s := New(table, "quotedesk-records")

	require.NoError(t, s.Put(context.Background(), "saas_u1", "company", []byte(`{}`)))

	require.NotNil(t, table.lastPut)
	assert.Equal(t, "quotedesk-records", aws.ToString(table.lastPut.TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "saas_u1"}, table.lastPut.Item["namespace"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "company"}, table.lastPut.Item["key"])
	assert.Equal(t, &types.AttributeValueMemberB{Value: []byte(`{}`)}, table.lastPut.Item["value"])
	assert.Contains(t, table.lastPut.Item, "updated_at")
}

func TestTransportErrorsAreUnavailable(t *testing.T) {
	table := newFakeTable()
	table.failWith = errors.New("connection refused")
	s := New(table, "t")

	_, err := s.Get(context.Background(), "ns", "k")
	assert.True(t, domain.IsUnavailable(err))

	err = s.Put(context.Background(), "ns", "k", []byte("v"))
	assert.True(t, domain.IsUnavailable(err))

	assert.Error(t, s.Check(context.Background()))
}

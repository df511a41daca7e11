package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	ordersPublicIDIndex    = "public_id-index"
	ordersPhoneKeyIndex    = "tracking_phone_key-index"
)

type orderItem struct {
	ID                string  `dynamodbav:"id"`
	PublicID          string  `dynamodbav:"public_id"`
	TrackingPhoneKey  string  `dynamodbav:"tracking_phone_key,omitempty"`
	CustomerName      string  `dynamodbav:"customer_name"`
	CustomerPhone     string  `dynamodbav:"customer_phone"`
	Building          string  `dynamodbav:"building"`
	Apartment         string  `dynamodbav:"apartment"`
	ItemsSummary      string  `dynamodbav:"items_summary"`
	ItemsCount        int     `dynamodbav:"items_count"`
	Total             float64 `dynamodbav:"total"`
	Status            string  `dynamodbav:"status"`
	FulfillmentMethod string  `dynamodbav:"fulfillment_method"`
	PlacedAt          string  `dynamodbav:"placed_at"`
	ScheduledFor      string  `dynamodbav:"scheduled_for,omitempty"`
	DeliveredAt       string  `dynamodbav:"delivered_at,omitempty"`
	CancelledAt       string  `dynamodbav:"cancelled_at,omitempty"`
	OrderData         string  `dynamodbav:"order_data"`
}

// OrderDynamoRepository persists orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI public_id-index: PK public_id
//   - GSI tracking_phone_key-index: PK tracking_phone_key (sparse; orders without a
//     phone key are not indexed)
//
// order_data holds the full order document; the other attributes are projections
// rebuilt on every write.
type OrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI, table string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) error {
	av, err := marshalOrderItem(o)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// Update writes the whole item. It is also the mirror path for orders first
// written to the file store, so it must not require the item to exist.
func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) error {
	av, err := marshalOrderItem(o)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrderItem(out.Item)
}

func (r *OrderDynamoRepository) GetByPublicID(ctx context.Context, publicID string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersPublicIDIndex),
		KeyConditionExpression: aws.String("public_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: publicID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrderItem(out.Items[0])
}

func (r *OrderDynamoRepository) ListByPhoneKey(ctx context.Context, phoneKey string) ([]entities.Order, error) {
	if phoneKey == "" {
		return []entities.Order{}, nil
	}

	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersPhoneKeyIndex),
		KeyConditionExpression: aws.String("tracking_phone_key = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: phoneKey},
		},
	})

	orders := make([]entities.Order, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		decoded, err := unmarshalOrderItems(page.Items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, decoded...)
	}
	return orders, nil
}

func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	orders := make([]entities.Order, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		decoded, err := unmarshalOrderItems(page.Items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, decoded...)
	}
	return orders, nil
}

func toOrderItem(o entities.Order) (orderItem, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return orderItem{}, err
	}
	s := entities.SummarizeOrder(o)
	return orderItem{
		ID:                o.ID,
		PublicID:          o.PublicID,
		TrackingPhoneKey:  o.TrackingPhoneKey,
		CustomerName:      s.CustomerName,
		CustomerPhone:     s.CustomerPhone,
		Building:          s.Building,
		Apartment:         s.Apartment,
		ItemsSummary:      s.ItemsSummary,
		ItemsCount:        s.ItemsCount,
		Total:             s.Total,
		Status:            string(s.Status),
		FulfillmentMethod: string(s.Method),
		PlacedAt:          formatTime(s.PlacedAt),
		ScheduledFor:      formatTimePtr(s.ScheduledFor),
		DeliveredAt:       formatTimePtr(s.DeliveredAt),
		CancelledAt:       formatTimePtr(s.CancelledAt),
		OrderData:         string(data),
	}, nil
}

func marshalOrderItem(o entities.Order) (map[string]types.AttributeValue, error) {
	it, err := toOrderItem(o)
	if err != nil {
		return nil, err
	}
	return attributevalue.MarshalMap(it)
}

func unmarshalOrderItem(av map[string]types.AttributeValue) (entities.Order, error) {
	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Order{}, err
	}
	var o entities.Order
	if err := json.Unmarshal([]byte(it.OrderData), &o); err != nil {
		return entities.Order{}, fmt.Errorf("decode order_data for %s: %w", it.ID, err)
	}
	// The key attribute is authoritative for lookups.
	o.TrackingPhoneKey = it.TrackingPhoneKey
	return o, nil
}

func unmarshalOrderItems(items []map[string]types.AttributeValue) ([]entities.Order, error) {
	out := make([]entities.Order, 0, len(items))
	for _, av := range items {
		o, err := unmarshalOrderItem(av)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

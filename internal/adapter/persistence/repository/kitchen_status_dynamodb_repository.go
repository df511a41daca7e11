package repository

import (
	"context"
	"time"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultKitchenTableName = "kitchen_status"
	kitchenStatusRowID      = "kitchen"
)

type kitchenStatusItem struct {
	ID        string `dynamodbav:"id"`
	IsOpen    bool   `dynamodbav:"is_open"`
	Message   string `dynamodbav:"message"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// KitchenStatusDynamoRepository keeps the single kitchen status row (id = "kitchen").
type KitchenStatusDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IKitchenStatusRepository = (*KitchenStatusDynamoRepository)(nil)

func NewKitchenStatusDynamoRepository(ddb DynamoDBAPI, table string) *KitchenStatusDynamoRepository {
	return &KitchenStatusDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "KITCHEN_TABLE", defaultKitchenTableName),
	}
}

func (r *KitchenStatusDynamoRepository) Get(ctx context.Context) (entities.KitchenStatus, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: kitchenStatusRowID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.KitchenStatus{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.KitchenStatus{}, false, nil
	}

	var it kitchenStatusItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.KitchenStatus{}, false, err
	}
	return entities.KitchenStatus{IsOpen: it.IsOpen, Message: it.Message}.Normalized(), true, nil
}

func (r *KitchenStatusDynamoRepository) Put(ctx context.Context, status entities.KitchenStatus) error {
	status = status.Normalized()
	av, err := attributevalue.MarshalMap(kitchenStatusItem{
		ID:        kitchenStatusRowID,
		IsOpen:    status.IsOpen,
		Message:   status.Message,
		UpdatedAt: formatTime(time.Now()),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

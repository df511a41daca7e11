package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMenusTableName = "menus"

type menuItemRow struct {
	ID        string `dynamodbav:"id"`
	Payload   string `dynamodbav:"payload"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// MenuDynamoRepository stores the active menu as a JSON payload under id "active-menu".
type MenuDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IMenuRepository = (*MenuDynamoRepository)(nil)

func NewMenuDynamoRepository(ddb DynamoDBAPI, table string) *MenuDynamoRepository {
	return &MenuDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "MENUS_TABLE", defaultMenusTableName),
	}
}

func (r *MenuDynamoRepository) Get(ctx context.Context) (entities.Menu, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: entities.MenuRowID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Menu{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.Menu{}, false, nil
	}

	var row menuItemRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Menu{}, false, err
	}
	var menu entities.Menu
	if err := json.Unmarshal([]byte(row.Payload), &menu); err != nil {
		return entities.Menu{}, false, fmt.Errorf("decode menu payload: %w", err)
	}
	return entities.NormalizeMenu(menu), true, nil
}

func (r *MenuDynamoRepository) Put(ctx context.Context, menu entities.Menu) error {
	payload, err := json.Marshal(entities.NormalizeMenu(menu))
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(menuItemRow{
		ID:        entities.MenuRowID,
		Payload:   string(payload),
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

package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/localmart/api/internal/domain"
)

// ProductRepo provides typed DynamoDB operations for the products table.
type ProductRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProductRepo(client *dynamodb.Client, tableName string) *ProductRepo {
	return &ProductRepo{client: client, tableName: tableName}
}

func (r *ProductRepo) Put(ctx context.Context, p *domain.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProductRepo) Get(ctx context.Context, productID string) (*domain.Product, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("product_id", productID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Scan returns products matching the optional equality filters. Price bounds
// are NOT applied here; the caller filters them in memory.
func (r *ProductRepo) Scan(ctx context.Context, category, sellerID string) ([]domain.Product, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	filter := ""
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if category != "" {
		filter = "#c = :cat"
		names["#c"] = "category"
		values[":cat"] = &types.AttributeValueMemberS{Value: category}
	}
	if sellerID != "" {
		if filter != "" {
			filter += " AND "
		}
		filter += "seller_id = :sid"
		values[":sid"] = &types.AttributeValueMemberS{Value: sellerID}
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
		input.ExpressionAttributeValues = values
		if len(names) > 0 {
			input.ExpressionAttributeNames = names
		}
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("product_id", productID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// UpdateRating writes the derived aggregates. Plain overwrite, no condition
// expression: concurrent recomputes race and the last write wins.
func (r *ProductRepo) UpdateRating(ctx context.Context, productID string, avgRating float64, reviewCount int) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("product_id", productID),
		UpdateExpression: aws.String("SET avg_rating = :avg, review_count = :cnt"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":avg": &types.AttributeValueMemberN{Value: strconv.FormatFloat(avgRating, 'f', -1, 64)},
			":cnt": &types.AttributeValueMemberN{Value: strconv.Itoa(reviewCount)},
		},
	})
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, productID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("product_id", productID),
	})
	return err
}

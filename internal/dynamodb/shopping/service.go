package shopping

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/exceptions"
)

const (
	NAME             = "ShoppingList"
	ITEM_NAME        = "ShoppingListItem"
	TRANSACT_MAX     = 100
	TOGGLE_ATTEMPTS  = 3
	DEFAULT_QUANTITY = "1"
)

type ShoppingListDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.ShoppingListDTO, data.ShoppingListInputDTO]
	FirstIndex string
}

func mealPlanPartition(mealPlanId int64) string {
	return services.ChildKey("MealPlan", mealPlanId, NAME)
}

func itemPartition(listId int64) string {
	return services.ChildKey(NAME, listId, "Item")
}

func newList(input data.ShoppingListInputDTO, now time.Time, pk, sk string, id, owner int64) data.ShoppingListDTO {
	list := data.ShoppingListDTO{
		PK:         pk,
		SK:         sk,
		Id:         id,
		Owner:      owner,
		Name:       *input.Name,
		MealPlanId: input.MealPlanId,
		CreateTime: now,
		UpdateTime: now,
	}
	if input.MealPlanId != nil {
		list.FirstIndex = aws.String(mealPlanPartition(*input.MealPlanId))
		list.FirstSort = aws.String(sk)
	}
	return list
}

func newItem(input data.ShoppingListItemInputDTO, id, listId, owner int64) data.ShoppingListItemDTO {
	quantity := DEFAULT_QUANTITY
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	return data.ShoppingListItemDTO{
		PK:         services.GlobalKey(ITEM_NAME),
		SK:         services.FormatId(id),
		FirstIndex: itemPartition(listId),
		FirstSort:  services.FormatId(id),
		Id:         id,
		ListId:     listId,
		Owner:      owner,
		Name:       *input.Name,
		Quantity:   quantity,
	}
}

func NewShoppingListService(tableName string, firstIndex string, client *dynamodb.Client, marshaler token.TokenMarshaler, sequence *services.Sequence) data.ShoppingListRepository {
	return &ShoppingListDynamoDBService{
		FirstIndex: firstIndex,
		RepositoryDynamoDBService: &services.RepositoryDynamoDBService[data.ShoppingListDTO, data.ShoppingListInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Sequence:       sequence,
			Name:           NAME,
			Newest:         true,
			Shim: func(pk, sk string) data.ShoppingListDTO {
				return data.ShoppingListDTO{PK: pk, SK: sk}
			},
			OnCreate: newList,
			OnUpdate: func(input data.ShoppingListInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
				if input.Name != nil {
					update = update.Set(expression.Name("name"), expression.Value(*input.Name))
				}
				return update
			},
		},
	}
}

func notFoundItem(itemId int64) error {
	return exceptions.NotFound("shopping list item", strconv.FormatInt(itemId, 10))
}

func (ss *ShoppingListDynamoDBService) put(item interface{}) (types.TransactWriteItem, error) {
	attributes, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	expr, err := expression.NewBuilder().WithCondition(services.NotExists()).Build()
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(ss.TableName),
			Item:                     attributes,
			ConditionExpression:      expr.Condition(),
			ExpressionAttributeNames: expr.Names(),
		},
	}, nil
}

// CreateWithItems writes the list together with the first items in a single
// transaction. Lists too large for one transaction continue in further
// transactions; items of a failed continuation are reported by name.
func (ss *ShoppingListDynamoDBService) CreateWithItems(ctx context.Context, owner int64, input data.ShoppingListInputDTO, inputs []data.ShoppingListItemInputDTO) (data.ShoppingListDTO, []data.ShoppingListItemDTO, error) {
	listId, err := ss.Sequence.Next(ctx, NAME)
	if err != nil {
		return data.ShoppingListDTO{}, nil, err
	}
	list := newList(input, time.Now(), services.PrimaryKey(owner, NAME), services.FormatId(listId), listId, owner)
	items := make([]data.ShoppingListItemDTO, 0, len(inputs))
	if len(inputs) > 0 {
		lastId, err := ss.Sequence.Reserve(ctx, ITEM_NAME, len(inputs))
		if err != nil {
			return list, nil, err
		}
		firstId := lastId - int64(len(inputs)) + 1
		for i, in := range inputs {
			items = append(items, newItem(in, firstId+int64(i), listId, owner))
		}
	}
	head, err := ss.put(list)
	if err != nil {
		return list, nil, err
	}
	writes := []types.TransactWriteItem{head}
	start := 0
	var written []data.ShoppingListItemDTO
	var failed []string
	var cause error
	for {
		end := start + TRANSACT_MAX - len(writes)
		if end > len(items) {
			end = len(items)
		}
		for _, item := range items[start:end] {
			write, err := ss.put(item)
			if err != nil {
				return list, written, err
			}
			writes = append(writes, write)
		}
		_, err := ss.DynamoDB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems:      writes,
			ClientRequestToken: aws.String(uuid.NewString()),
		})
		if err != nil {
			if start == 0 {
				return list, nil, err
			}
			cause = err
			for _, item := range items[start:end] {
				failed = append(failed, item.Name)
			}
		} else {
			written = append(written, items[start:end]...)
		}
		start = end
		if start >= len(items) {
			break
		}
		writes = nil
	}
	if len(failed) > 0 {
		return list, written, &exceptions.PartialWriteError{
			Resource: "shopping list",
			Id:       strconv.FormatInt(listId, 10),
			Failed:   failed,
			Cause:    cause,
		}
	}
	return list, written, nil
}

func (ss *ShoppingListDynamoDBService) ListByMealPlan(ctx context.Context, mealPlanId int64) ([]data.ShoppingListDTO, error) {
	input, err := services.IndexQuery(ss.TableName, ss.FirstIndex, services.FIRST_INDEX_HASH, mealPlanPartition(mealPlanId), false, nil)
	if err != nil {
		return nil, err
	}
	return services.QueryAll[data.ShoppingListDTO](ctx, ss.DynamoDB, input)
}

func (ss *ShoppingListDynamoDBService) Unlink(ctx context.Context, owner int64, listId int64) error {
	key, err := services.Key(services.PrimaryKey(owner, NAME), services.FormatId(listId))
	if err != nil {
		return err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now())).
		Remove(expression.Name("mealPlanId")).
		Remove(expression.Name(services.FIRST_INDEX_HASH)).
		Remove(expression.Name(services.FIRST_INDEX_RANGE))
	expr, err := expression.NewBuilder().WithCondition(services.Exists()).WithUpdate(update).Build()
	if err != nil {
		return err
	}
	_, err = ss.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ss.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return exceptions.NotFound("shopping list", strconv.FormatInt(listId, 10))
	}
	return err
}

func (ss *ShoppingListDynamoDBService) AddItem(ctx context.Context, owner int64, listId int64, input data.ShoppingListItemInputDTO) (data.ShoppingListItemDTO, error) {
	id, err := ss.Sequence.Next(ctx, ITEM_NAME)
	if err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	item := newItem(input, id, listId, owner)
	write, err := ss.put(item)
	if err != nil {
		return item, err
	}
	_, err = ss.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                write.Put.TableName,
		Item:                     write.Put.Item,
		ConditionExpression:      write.Put.ConditionExpression,
		ExpressionAttributeNames: write.Put.ExpressionAttributeNames,
	})
	if err != nil && services.IsConditionFailed(err) {
		return item, exceptions.Conflict("shopping list item", strconv.FormatInt(id, 10))
	}
	return item, err
}

func (ss *ShoppingListDynamoDBService) GetItem(ctx context.Context, itemId int64) (data.ShoppingListItemDTO, error) {
	var shim data.ShoppingListItemDTO
	key, err := services.Key(services.GlobalKey(ITEM_NAME), services.FormatId(itemId))
	if err != nil {
		return shim, err
	}
	response, err := ss.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(ss.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, notFoundItem(itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (ss *ShoppingListDynamoDBService) ListItems(ctx context.Context, listId int64) ([]data.ShoppingListItemDTO, error) {
	input, err := services.IndexQuery(ss.TableName, ss.FirstIndex, services.FIRST_INDEX_HASH, itemPartition(listId), false, nil)
	if err != nil {
		return nil, err
	}
	return services.QueryAll[data.ShoppingListItemDTO](ctx, ss.DynamoDB, input)
}

// ToggleItem flips checked only if nobody flipped it since it was read, and
// rereads on contention.
func (ss *ShoppingListDynamoDBService) ToggleItem(ctx context.Context, owner int64, itemId int64) (data.ShoppingListItemDTO, error) {
	for attempt := 0; attempt < TOGGLE_ATTEMPTS; attempt++ {
		item, err := ss.GetItem(ctx, itemId)
		if err != nil {
			return item, err
		}
		if item.Owner != owner {
			return item, notFoundItem(itemId)
		}
		key, err := services.Key(item.PK, item.SK)
		if err != nil {
			return item, err
		}
		condition := expression.Name("checked").Equal(expression.Value(item.Checked)).
			And(expression.Name("owner").Equal(expression.Value(owner)))
		update := expression.Set(expression.Name("checked"), expression.Value(!item.Checked))
		expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
		if err != nil {
			return item, err
		}
		response, err := ss.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(ss.TableName),
			Key:                       key,
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ReturnValues:              types.ReturnValueAllNew,
		})
		if err != nil {
			if services.IsConditionFailed(err) {
				continue
			}
			return item, err
		}
		err = attributevalue.UnmarshalMap(response.Attributes, &item)
		return item, err
	}
	return data.ShoppingListItemDTO{}, exceptions.Conflict("shopping list item", strconv.FormatInt(itemId, 10))
}

func (ss *ShoppingListDynamoDBService) DeleteItem(ctx context.Context, owner int64, itemId int64) error {
	key, err := services.Key(services.GlobalKey(ITEM_NAME), services.FormatId(itemId))
	if err != nil {
		return err
	}
	condition := services.Exists().And(expression.Name("owner").Equal(expression.Value(owner)))
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return err
	}
	_, err = ss.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:                       key,
		TableName:                 aws.String(ss.TableName),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return notFoundItem(itemId)
	}
	return err
}

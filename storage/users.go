package storage

import (
	"context"

	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserStorage interface {
	Get(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

// DynamoUserStorage keys users by email (PK); the uuid ID is what other
// documents reference.
type DynamoUserStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoUserStorage) Get(ctx context.Context, email string) (*User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": email})
	if err != nil {
		logging.Log.Errorf("USER: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("USER: GET storage failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var u *User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		logging.Log.Errorf("USER: failed to unmarshal result: %v", err)
		return nil, err
	}
	return u, nil
}

func (s *DynamoUserStorage) GetByID(ctx context.Context, id string) (*User, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("ID = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		logging.Log.Errorf("USER: scan by id failed: %v", err)
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, ErrItemNotFound
	}

	var u *User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		logging.Log.Errorf("USER: failed to unmarshal result: %v", err)
		return nil, err
	}
	return u, nil
}

func (s *DynamoUserStorage) GetAll(ctx context.Context) ([]*User, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("USER: scan failed: %v", err)
		return nil, err
	}

	var users []*User
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &users); err != nil {
		logging.Log.Errorf("USER: failed to unmarshal list: %v", err)
		return nil, err
	}
	return users, nil
}

func (s *DynamoUserStorage) Create(ctx context.Context, user *User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		logging.Log.Errorf("USER: failed to marshal user: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("USER: PUT storage failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoUserStorage) Update(ctx context.Context, user *User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		logging.Log.Errorf("USER: failed to marshal user: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrItemNotFound
		}
		logging.Log.Errorf("USER: PUT storage failed: %v", err)
		return err
	}
	return nil
}

package storage

import (
	"context"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type RegistrationStorage interface {
	Create(ctx context.Context, reg *Registration) error
	Get(ctx context.Context, hackathonID, userID string) (*Registration, error)
	GetByHackathon(ctx context.Context, hackathonID string) ([]*Registration, error)
	GetByUser(ctx context.Context, userID string) ([]*Registration, error)
	Delete(ctx context.Context, hackathonID, userID string) error
}

// DynamoRegistrationStorage keys registrations by hackathon (PK) and
// user (SK), so the conditional put doubles as the duplicate guard.
type DynamoRegistrationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRegistrationStorage) Create(ctx context.Context, reg *Registration) error {
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(reg)
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to marshal registration: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("REGISTRATION: PUT storage failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRegistrationStorage) Get(ctx context.Context, hackathonID, userID string) (*Registration, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": hackathonID, "SK": userID})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: GET storage failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var reg *Registration
	if err := attributevalue.UnmarshalMap(out.Item, &reg); err != nil {
		logging.Log.Errorf("REGISTRATION: failed to unmarshal result: %v", err)
		return nil, err
	}
	return reg, nil
}

func (s *DynamoRegistrationStorage) GetByHackathon(ctx context.Context, hackathonID string) ([]*Registration, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :hid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hid": &types.AttributeValueMemberS{Value: hackathonID},
		},
	})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: query by hackathon failed: %v", err)
		return nil, err
	}

	var regs []*Registration
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &regs); err != nil {
		logging.Log.Errorf("REGISTRATION: failed to unmarshal list: %v", err)
		return nil, err
	}
	return regs, nil
}

func (s *DynamoRegistrationStorage) GetByUser(ctx context.Context, userID string) ([]*Registration, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("SK = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: scan by user failed: %v", err)
		return nil, err
	}

	var regs []*Registration
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &regs); err != nil {
		logging.Log.Errorf("REGISTRATION: failed to unmarshal list: %v", err)
		return nil, err
	}
	return regs, nil
}

func (s *DynamoRegistrationStorage) Delete(ctx context.Context, hackathonID, userID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": hackathonID, "SK": userID})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: failed to marshal key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("REGISTRATION: DEL storage item failed: %v", err)
		return err
	}
	return nil
}

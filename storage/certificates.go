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

type CertificateStorage interface {
	Get(ctx context.Context, code string) (*Certificate, error)
	GetByUser(ctx context.Context, userID string) ([]*Certificate, error)
	GetByHackathon(ctx context.Context, hackathonID string) ([]*Certificate, error)
	Put(ctx context.Context, cert *Certificate) error
}

type DynamoCertificateStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCertificateStorage) Get(ctx context.Context, code string) (*Certificate, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": code})
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: GET storage failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var cert *Certificate
	if err := attributevalue.UnmarshalMap(out.Item, &cert); err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to unmarshal result: %v", err)
		return nil, err
	}
	return cert, nil
}

func (s *DynamoCertificateStorage) GetByUser(ctx context.Context, userID string) ([]*Certificate, error) {
	return s.scanWith(ctx, "UserID = :v", userID)
}

func (s *DynamoCertificateStorage) GetByHackathon(ctx context.Context, hackathonID string) ([]*Certificate, error) {
	return s.scanWith(ctx, "HackathonID = :v", hackathonID)
}

func (s *DynamoCertificateStorage) scanWith(ctx context.Context, filter, value string) ([]*Certificate, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String(filter),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: scan failed: %v", err)
		return nil, err
	}

	var certs []*Certificate
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &certs); err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to unmarshal list: %v", err)
		return nil, err
	}
	return certs, nil
}

func (s *DynamoCertificateStorage) Put(ctx context.Context, cert *Certificate) error {
	if cert.IssuedAt.IsZero() {
		cert.IssuedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(cert)
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to marshal certificate: %v", err)
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
		logging.Log.Errorf("CERTIFICATE: PUT storage failed: %v", err)
		return err
	}
	return nil
}
